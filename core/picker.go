package core

import (
	"cmp"
	"slices"
	"strings"
)

type PickerItem struct {
	ID      string
	Label   string
	Section string
	Meta    string
	Search  string
}

type PickerAction int

const (
	PickerActionNone PickerAction = iota
	PickerActionMoved
	PickerActionSelected
	PickerActionCancelled
)

type PickerResult struct {
	Action PickerAction
	Item   PickerItem
}

// Picker is a filterable single-select list. Items keep their section order;
// within a section better fuzzy matches come first.
type Picker struct {
	title    string
	items    []PickerItem
	filtered []PickerItem
	query    string
	cursor   int
}

func NewPicker(title string, items []PickerItem) *Picker {
	p := &Picker{title: strings.TrimSpace(title)}
	p.items = append([]PickerItem(nil), items...)
	p.refilter()
	return p
}

func (p *Picker) Title() string { return p.title }
func (p *Picker) Query() string { return p.query }
func (p *Picker) Cursor() int   { return p.cursor }

func (p *Picker) Items() []PickerItem {
	return append([]PickerItem(nil), p.filtered...)
}

func (p *Picker) SetQuery(q string) {
	p.query = q
	p.refilter()
}

// MoveTo places the cursor on the item with id, if it is visible.
func (p *Picker) MoveTo(id string) {
	for i, item := range p.filtered {
		if item.ID == id {
			p.cursor = i
			return
		}
	}
}

func (p *Picker) CurrentItem() (PickerItem, bool) {
	if len(p.filtered) == 0 {
		return PickerItem{}, false
	}
	return p.filtered[min(max(p.cursor, 0), len(p.filtered)-1)], true
}

// HandleKey applies one key. Every printable key extends the query, so
// movement uses the arrows or ctrl+n and ctrl+p.
func (p *Picker) HandleKey(keyName string) PickerResult {
	switch keyName {
	case "up", "ctrl+p":
		return p.move(-1)
	case "down", "ctrl+n":
		return p.move(1)
	case "enter":
		if item, ok := p.CurrentItem(); ok {
			return PickerResult{Action: PickerActionSelected, Item: item}
		}
	case "esc":
		return PickerResult{Action: PickerActionCancelled}
	case "backspace":
		if q := []rune(p.query); len(q) > 0 {
			p.SetQuery(string(q[:len(q)-1]))
		}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
	}
	return PickerResult{Action: PickerActionNone}
}

func (p *Picker) move(delta int) PickerResult {
	next := p.cursor + delta
	if next < 0 || next >= len(p.filtered) {
		return PickerResult{Action: PickerActionNone}
	}
	p.cursor = next
	return PickerResult{Action: PickerActionMoved}
}

// refilter keeps sections in first-seen order and, inside a section, orders
// matches by score with ties left in input order.
func (p *Picker) refilter() {
	query := strings.TrimSpace(p.query)
	sectionRank := make(map[string]int)
	type hit struct {
		item    PickerItem
		section int
		score   int
	}
	var hits []hit
	for _, item := range p.items {
		if _, ok := sectionRank[item.Section]; !ok {
			sectionRank[item.Section] = len(sectionRank)
		}
		haystack := cmp.Or(strings.TrimSpace(item.Search), item.Label)
		if ok, score := fuzzyMatchScore(haystack, query); ok {
			hits = append(hits, hit{item: item, section: sectionRank[item.Section], score: score})
		}
	}
	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Or(cmp.Compare(a.section, b.section), cmp.Compare(b.score, a.score))
	})
	p.filtered = make([]PickerItem, len(hits))
	for i, h := range hits {
		p.filtered[i] = h.item
	}
	p.cursor = min(max(p.cursor, 0), max(len(p.filtered)-1, 0))
}

// fuzzyMatchScore matches query as a subsequence of label. Prefix hits,
// adjacent runs and exact matches score higher.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	score := len(queryLower)
	from, last := 0, -2
	for i := 0; i < len(queryLower); i++ {
		j := strings.IndexByte(labelLower[from:], queryLower[i])
		if j < 0 {
			return false, 0
		}
		j += from
		switch {
		case i == 0 && j == 0:
			score += 10
		case j == last+1:
			score += 3
		}
		last, from = j, j+1
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
