package panels

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/sim"
)

func toolPanel(t *testing.T, h *harness) *ToolPanel {
	t.Helper()
	p, ok := h.m.ActivePanel().(*ToolPanel)
	if !ok {
		t.Fatalf("active panel is %T", h.m.ActivePanel())
	}
	return p
}

// fill edits the focused text field, replacing its value.
func (h *harness) fill(value string) {
	h.t.Helper()
	h.press("enter")
	for i := 0; i < 8; i++ {
		h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	h.typeText(value)
	h.press("esc")
}

func TestDecompilerRequiresFile(t *testing.T) {
	h := newHarness(t, "decompiler")
	if cmd := h.press("x"); cmd != nil {
		t.Fatalf("missing file must block the run")
	}
	if status, isErr := h.m.Status(); !isErr || status != "firmware file is required" {
		t.Fatalf("unexpected status %q", status)
	}
	if !strings.Contains(h.view(), "! firmware file is required") {
		t.Fatalf("form should show the validation error")
	}
}

func TestDecompilerExportMatchesResult(t *testing.T) {
	h := newHarness(t, "decompiler")
	h.fill("router.bin")
	h.press("tab", "right")
	h.send(actionResult(t, h.press("x")))

	p := toolPanel(t, h)
	blob, ok := p.Result()
	if !ok {
		t.Fatalf("decompile should resolve")
	}
	res := blob.Payload.(sim.DecompileResult)
	if res.File != "router.bin" || res.Arch != "x86" {
		t.Fatalf("request not passed through: %+v", res)
	}
	if !strings.Contains(h.view(), "process_data()") {
		t.Fatalf("output should list decompiled functions")
	}

	h.press("e")
	data, err := os.ReadFile(filepath.Join(h.dir, "decompile_results.json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var got sim.DecompileResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.File != res.File || len(got.Functions) != len(res.Functions) || len(got.Vulnerabilities) != len(res.Vulnerabilities) {
		t.Fatalf("export %+v does not match result %+v", got, res)
	}
}

func TestExportBeforeResultWritesNothing(t *testing.T) {
	h := newHarness(t, "debug")
	h.press("e")
	if status, _ := h.m.Status(); status != "Nothing to export yet" {
		t.Fatalf("unexpected status %q", status)
	}
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("export dir should be empty, has %d entries", len(entries))
	}
}

func TestCaptureDurationBounds(t *testing.T) {
	h := newHarness(t, "capture")
	h.press("tab")
	h.fill("500")
	if cmd := h.press("x"); cmd != nil {
		t.Fatalf("out of range duration must block the run")
	}
	if status, _ := h.m.Status(); status != "duration must be at most 300" {
		t.Fatalf("unexpected status %q", status)
	}

	h.fill("45")
	h.send(actionResult(t, h.press("x")))
	blob, ok := toolPanel(t, h).Result()
	if !ok {
		t.Fatalf("capture should resolve")
	}
	res := blob.Payload.(sim.CaptureResult)
	if res.Duration != 45 || res.PacketCount < 50 || res.PacketCount >= 150 {
		t.Fatalf("unexpected capture %+v", res)
	}
}

func TestFlashReadAndWriteShareOneJob(t *testing.T) {
	h := newHarness(t, "flash")
	if cmd := h.press("w"); cmd != nil {
		t.Fatalf("write without a file must not start")
	}
	h.fill("dump.bin")
	read := h.press("r")
	if read == nil {
		t.Fatalf("read should start")
	}
	if cmd := h.press("w"); cmd != nil {
		t.Fatalf("write must wait for the running read")
	}
	h.send(actionResult(t, read))
	blob, ok := toolPanel(t, h).Result()
	if !ok || blob.Title != "Flash read" {
		t.Fatalf("unexpected result %+v", blob)
	}
	h.send(actionResult(t, h.press("w")))
	blob, _ = toolPanel(t, h).Result()
	if blob.Payload.(sim.FlashResult).Operation != "write" {
		t.Fatalf("expected a write result")
	}
}

func TestDebugRunExportsLog(t *testing.T) {
	h := newHarness(t, "debug")
	h.fill("./a.out")
	h.send(actionResult(t, h.press("x")))
	h.press("c")
	if !strings.Contains(h.clip.Last, "Sandbox terminated safely.") {
		t.Fatalf("copy should take the output text")
	}
	h.press("e")
	data, err := os.ReadFile(filepath.Join(h.dir, "debug_log.txt"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	for _, want := range []string{"target: ./a.out", "pid: 1234", "Security check passed."} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log missing %q:\n%s", want, data)
		}
	}
}

func TestPowerAuditChartsAndExportsCSV(t *testing.T) {
	h := newHarness(t, "power")
	h.send(actionResult(t, h.press("x")))
	blob, ok := toolPanel(t, h).Result()
	if !ok {
		t.Fatalf("audit should resolve")
	}
	res := blob.Payload.(sim.PowerResult)
	if len(res.Samples) != 30*10 || res.SampleRate != 10 {
		t.Fatalf("unexpected audit %d samples at %d Hz", len(res.Samples), res.SampleRate)
	}
	if !strings.Contains(h.view(), "Power (mW)") {
		t.Fatalf("chart pane missing")
	}

	h.press("e")
	f, err := os.Open(filepath.Join(h.dir, "power_audit.csv"))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != len(res.Samples)+1 || strings.Join(rows[0], ",") != "time,voltage,current,power" {
		t.Fatalf("unexpected csv shape: %d rows, header %v", len(rows), rows[0])
	}
}

func TestStaleResultDroppedAfterSwitch(t *testing.T) {
	h := newHarness(t, "decompiler")
	h.fill("fw.bin")
	cmd := h.press("x")
	h.send(core.ModuleSelectMsg{ID: core.Overview})
	res := actionResult(t, cmd)
	h.send(res)
	h.send(core.ModuleSelectMsg{ID: core.Decompiler})
	p := toolPanel(t, h)
	if p.job.State() != core.ActionIdle {
		t.Fatalf("fresh panel should be idle, got %s", p.job.State())
	}
}
