package core

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ModuleID names one panel. The set is closed; Overview is the zero value and
// the fallback for anything unrecognized.
type ModuleID int

const (
	Overview ModuleID = iota
	Identity
	Vault
	SecureShare
	Quantum
	Decompiler
	ProtoCapture
	FlashToolkit
	DebugRun
	PowerAudit

	moduleCount
)

type moduleInfo struct {
	slug  string
	title string
	group string
}

var modules = [moduleCount]moduleInfo{
	Overview:     {slug: "overview", title: "Overview", group: "home"},
	Identity:     {slug: "identity", title: "Identity Core", group: "vault"},
	Vault:        {slug: "vault", title: "Encrypted Vault", group: "vault"},
	SecureShare:  {slug: "share", title: "Secure Share", group: "vault"},
	Quantum:      {slug: "quantum", title: "Quantum Resistance", group: "vault"},
	Decompiler:   {slug: "decompiler", title: "Decompiler", group: "toolkit"},
	ProtoCapture: {slug: "capture", title: "Proto Capture", group: "toolkit"},
	FlashToolkit: {slug: "flash", title: "Flash Toolkit", group: "toolkit"},
	DebugRun:     {slug: "debug", title: "Debug Run", group: "toolkit"},
	PowerAudit:   {slug: "power", title: "Power Audit", group: "toolkit"},
}

// Modules lists every module in navigation order.
func Modules() []ModuleID {
	out := make([]ModuleID, 0, moduleCount)
	for id := Overview; id < moduleCount; id++ {
		out = append(out, id)
	}
	return out
}

func (id ModuleID) Valid() bool { return id >= Overview && id < moduleCount }

func (id ModuleID) info() moduleInfo {
	if !id.Valid() {
		return modules[Overview]
	}
	return modules[id]
}

func (id ModuleID) Slug() string  { return id.info().slug }
func (id ModuleID) Title() string { return id.info().title }
func (id ModuleID) Group() string { return id.info().group }
func (id ModuleID) String() string {
	if !id.Valid() {
		return "module(" + strconv.Itoa(int(id)) + ")"
	}
	return id.Slug()
}

// Key is the digit that jumps straight to the module.
func (id ModuleID) Key() string {
	if !id.Valid() {
		return ""
	}
	return strconv.Itoa(int(id))
}

// Next steps through the modules in navigation order, wrapping at both ends.
func (id ModuleID) Next(delta int) ModuleID {
	if !id.Valid() {
		id = Overview
	}
	n := int(moduleCount)
	return ModuleID(((int(id)+delta)%n + n) % n)
}

// ParseModuleID accepts a slug, a title or a hot key digit.
func ParseModuleID(name string) (ModuleID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Overview, false
	}
	for _, id := range Modules() {
		info := modules[id]
		if name == info.slug || name == strings.ToLower(info.title) || name == id.Key() {
			return id, true
		}
	}
	return Overview, false
}

// Suggest returns the slug closest to name when it is a plausible typo.
func Suggest(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, id := range Modules() {
		d := levenshtein.ComputeDistance(name, modules[id].slug)
		if d < bestDist {
			best, bestDist = modules[id].slug, d
		}
	}
	return best, best != ""
}

const maxSuggestDistance = 3
