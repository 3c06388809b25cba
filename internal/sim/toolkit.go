package sim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Toolkit is the hardware reverse-engineering backend.
type Toolkit interface {
	Decompile(ctx context.Context, req DecompileRequest) (DecompileResult, error)
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
	ReadFlash(ctx context.Context, req FlashRequest) (FlashResult, error)
	WriteFlash(ctx context.Context, req FlashRequest) (FlashResult, error)
	RunSandbox(ctx context.Context, req DebugRequest) (DebugResult, error)
	AuditPower(ctx context.Context, req PowerRequest) (PowerResult, error)
}

type DecompileRequest struct {
	File string
	Arch string
}

type Vulnerability struct {
	ID       string `json:"id"`
	Function string `json:"function"`
	Summary  string `json:"summary"`
}

type DecompileResult struct {
	File            string          `json:"file"`
	Arch            string          `json:"arch"`
	Functions       []string        `json:"functions"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

func (r DecompileResult) Text() string {
	var b strings.Builder
	b.WriteString("Analyzing firmware...\n\nDecompiled functions:\n")
	for _, fn := range r.Functions {
		fmt.Fprintf(&b, "- %s()\n", fn)
	}
	b.WriteString("\nVulnerabilities found:\n")
	for _, v := range r.Vulnerabilities {
		fmt.Fprintf(&b, "- %s in %s()\n", v.Summary, v.Function)
	}
	b.WriteString("\nAnalysis complete.")
	return b.String()
}

type CaptureRequest struct {
	Interface string
	Duration  int
}

type Packet struct {
	Bus     string `json:"bus"`
	Summary string `json:"summary"`
}

type CaptureResult struct {
	SessionID   string   `json:"session_id"`
	Interface   string   `json:"interface"`
	Duration    int      `json:"duration_seconds"`
	Packets     []Packet `json:"packets"`
	PacketCount int      `json:"packet_count"`
}

func (r CaptureResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Capturing protocol data for %d seconds...\n\nPackets captured:\n", r.Duration)
	for i, p := range r.Packets {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, p.Bus, p.Summary)
	}
	fmt.Fprintf(&b, "\nCapture complete. %d packets analyzed.", r.PacketCount)
	return b.String()
}

type FlashRequest struct {
	File string
	Chip string
}

type BlockStatus struct {
	Block int  `json:"block"`
	OK    bool `json:"ok"`
}

type FlashResult struct {
	Operation string        `json:"operation"`
	Chip      string        `json:"chip"`
	File      string        `json:"file,omitempty"`
	ChipID    string        `json:"chip_id"`
	Size      string        `json:"size"`
	Dump      []string      `json:"dump,omitempty"`
	Blocks    []BlockStatus `json:"blocks,omitempty"`
	Verified  bool          `json:"verified"`
}

func (r FlashResult) Text() string {
	var b strings.Builder
	if r.Operation == "write" {
		b.WriteString("Writing to flash memory...\n\nVerifying write...\n")
		for _, blk := range r.Blocks {
			status := "OK"
			if !blk.OK {
				status = "FAILED"
			}
			fmt.Fprintf(&b, "Block %d: %s\n", blk.Block, status)
		}
		b.WriteString("...\n\nWrite complete. ")
		if r.Verified {
			b.WriteString("Verification passed.")
		} else {
			b.WriteString("Verification failed.")
		}
		return b.String()
	}
	fmt.Fprintf(&b, "Reading flash memory...\n\nChip ID: %s\nSize: %s\n\nData dump:\n", r.ChipID, r.Size)
	for _, line := range r.Dump {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("...\n\nRead complete.")
	return b.String()
}

type DebugRequest struct {
	Target string
	Args   string
}

type DebugResult struct {
	Target        string   `json:"target"`
	Args          string   `json:"args"`
	PID           int      `json:"pid"`
	Output        []string `json:"output"`
	ExecutionTime string   `json:"execution_time"`
	MemoryMB      int      `json:"memory_mb"`
	Syscalls      int      `json:"syscalls"`
}

func (r DebugResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Running binary in sandbox...\n\nProcess started: PID %d\n\nOutput:\n", r.PID)
	for _, line := range r.Output {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nExecution time: %s\nMemory usage: %dMB\nSystem calls: %d\n\nSandbox terminated safely.",
		r.ExecutionTime, r.MemoryMB, r.Syscalls)
	return b.String()
}

// Log renders the result as key: value lines for a text export.
func (r DebugResult) Log() string {
	var b strings.Builder
	fmt.Fprintf(&b, "target: %s\n", r.Target)
	fmt.Fprintf(&b, "args: %s\n", r.Args)
	fmt.Fprintf(&b, "pid: %d\n", r.PID)
	fmt.Fprintf(&b, "execution_time: %s\n", r.ExecutionTime)
	fmt.Fprintf(&b, "memory: %dMB\n", r.MemoryMB)
	fmt.Fprintf(&b, "syscalls: %d\n", r.Syscalls)
	b.WriteString("output:\n")
	for _, line := range r.Output {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

type PowerRequest struct {
	Duration   int
	SampleRate int
}

type Sample struct {
	Time    float64 `json:"time"`
	Voltage float64 `json:"voltage"`
	Current int     `json:"current"`
	Power   int     `json:"power"`
}

type PowerResult struct {
	Duration   int      `json:"duration_seconds"`
	SampleRate int      `json:"sample_rate_hz"`
	Samples    []Sample `json:"samples"`
	PeakMW     int      `json:"peak_mw"`
	AverageMW  int      `json:"average_mw"`
	EnergyJ    float64  `json:"energy_j"`
}

func (r PowerResult) Header() []string {
	return []string{"time", "voltage", "current", "power"}
}

func (r PowerResult) Rows() [][]string {
	rows := make([][]string, 0, len(r.Samples))
	for _, s := range r.Samples {
		rows = append(rows, []string{
			strconv.FormatFloat(s.Time, 'f', 2, 64),
			strconv.FormatFloat(s.Voltage, 'f', 1, 64),
			strconv.Itoa(s.Current),
			strconv.Itoa(s.Power),
		})
	}
	return rows
}

// previewRows is how many measurement rows Text shows before eliding.
const previewRows = 3

func (r PowerResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Power audit running for %d seconds...\n\nMeasurements:\n", r.Duration)
	b.WriteString("Time(s) | Voltage(V) | Current(mA) | Power(mW)\n")
	b.WriteString("--------|------------|-------------|-----------\n")
	for i, s := range r.Samples {
		if i == previewRows {
			b.WriteString("...\n")
			break
		}
		fmt.Fprintf(&b, "%-7.2f | %-10.1f | %-11d | %d\n", s.Time, s.Voltage, s.Current, s.Power)
	}
	fmt.Fprintf(&b, "\nPeak power: %dmW\nAverage power: %dmW\nEnergy consumed: %.1fJ\n\nAudit complete.",
		r.PeakMW, r.AverageMW, r.EnergyJ)
	return b.String()
}

// MockToolkit returns canned analysis results.
type MockToolkit struct {
	Engine *Engine
}

func (t MockToolkit) Decompile(ctx context.Context, req DecompileRequest) (DecompileResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return DecompileResult{}, err
	}
	return DecompileResult{
		File:      req.File,
		Arch:      req.Arch,
		Functions: []string{"main", "init_hardware", "process_data", "security_check"},
		Vulnerabilities: []Vulnerability{
			{ID: "buffer_overflow", Function: "process_data", Summary: "Buffer overflow"},
			{ID: "weak_encryption", Function: "security_check", Summary: "Weak encryption"},
		},
	}, nil
}

func (t MockToolkit) Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{
		SessionID: uuid.NewString(),
		Interface: req.Interface,
		Duration:  req.Duration,
		Packets: []Packet{
			{Bus: "USB", Summary: "SETUP (0x80) -> ACK"},
			{Bus: "SPI", Summary: "MOSI: 0xDEADBEEF"},
			{Bus: "I2C", Summary: "START -> 0x50 -> DATA -> STOP"},
			{Bus: "CAN", Summary: "ID: 0x123, DATA: 0xFF00AA55"},
		},
		PacketCount: t.Engine.IntRange(50, 150),
	}, nil
}

func (t MockToolkit) ReadFlash(ctx context.Context, req FlashRequest) (FlashResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return FlashResult{}, err
	}
	return FlashResult{
		Operation: "read",
		Chip:      req.Chip,
		File:      req.File,
		ChipID:    "0xEF4017",
		Size:      "16MB",
		Dump: []string{
			"00000000: FF FF FF FF FF FF FF FF FF FF FF FF FF FF FF FF",
			"00000010: 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F",
		},
		Verified: true,
	}, nil
}

func (t MockToolkit) WriteFlash(ctx context.Context, req FlashRequest) (FlashResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return FlashResult{}, err
	}
	return FlashResult{
		Operation: "write",
		Chip:      req.Chip,
		File:      req.File,
		ChipID:    "0xEF4017",
		Size:      "16MB",
		Blocks:    []BlockStatus{{Block: 0, OK: true}, {Block: 1, OK: true}},
		Verified:  true,
	}, nil
}

func (t MockToolkit) RunSandbox(ctx context.Context, req DebugRequest) (DebugResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return DebugResult{}, err
	}
	return DebugResult{
		Target: req.Target,
		Args:   req.Args,
		PID:    1234,
		Output: []string{
			"Initializing hardware...",
			"Loading configuration...",
			"Processing input data...",
			"Security check passed.",
		},
		ExecutionTime: (2300 * time.Millisecond).String(),
		MemoryMB:      45,
		Syscalls:      127,
	}, nil
}

// nominalVoltage is the supply rail every simulated sample reports.
const nominalVoltage = 3.3

// AuditPower takes SampleRate readings a second for Duration seconds.
func (t MockToolkit) AuditPower(ctx context.Context, req PowerRequest) (PowerResult, error) {
	if err := t.Engine.Latency(ctx); err != nil {
		return PowerResult{}, err
	}
	rate := max(1, req.SampleRate)
	n := max(1, req.Duration*rate)
	res := PowerResult{Duration: req.Duration, SampleRate: rate, Samples: make([]Sample, 0, n)}
	total := 0
	for i := 0; i < n; i++ {
		current := t.Engine.IntRange(150, 250)
		power := int(math.Round(nominalVoltage * float64(current)))
		at := float64(i) / float64(rate)
		res.Samples = append(res.Samples, Sample{Time: at, Voltage: nominalVoltage, Current: current, Power: power})
		total += power
		res.PeakMW = max(res.PeakMW, power)
	}
	res.AverageMW = total / n
	res.EnergyJ = math.Round(float64(res.AverageMW)*float64(req.Duration)/100) / 10
	return res, nil
}
