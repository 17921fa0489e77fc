// Package plot vẽ cấu trúc bậc hai RNA ra SVG bằng cách gọi RNAplot (ViennaRNA) trong thư mục tạm.
package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"aptamer_api/internal/sequence"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput báo sequence/structure không hợp lệ (lỗi phía client)
var ErrInvalidInput = errors.New("invalid plot input")

// DefaultBinary là tên chương trình RNAplot tìm trong PATH
const DefaultBinary = "RNAplot"

// Runner chạy một chương trình ngoài trong thư mục dir
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner chạy tiến trình thật qua os/exec
type ExecRunner struct{}

// Run chạy lệnh và thu stdout/stderr
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Plotter bọc RNAplot, an toàn khi dùng đồng thời (mỗi lần vẽ có thư mục tạm riêng)
type Plotter struct {
	binary string
	runner Runner
	log    *logrus.Entry
}

// New tạo plotter dùng binary (rỗng thì dùng RNAplot) và tiến trình thật
func New(binary string, log *logrus.Entry) *Plotter {
	return NewWithRunner(binary, ExecRunner{}, log)
}

// NewWithRunner tạo plotter với runner tùy chọn
func NewWithRunner(binary string, runner Runner, log *logrus.Entry) *Plotter {
	if binary == "" {
		binary = DefaultBinary
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = logrus.NewEntry(l)
	}
	return &Plotter{binary: binary, runner: runner, log: log}
}

// Plot trả về nội dung SVG cho cặp sequence/structure.
// Sequence được chuẩn hóa (viết hoa, T→U); hai chuỗi phải cùng độ dài.
func (p *Plotter) Plot(ctx context.Context, seq, structure string) ([]byte, error) {
	seq = sequence.Normalize(seq)
	structure = strings.TrimSpace(structure)
	if err := validate(seq, structure); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "rnaplot-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	base := "structure_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	input := filepath.Join(dir, base+".ss")
	if err := os.WriteFile(input, []byte(seq+"\n"+structure+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write plot input: %w", err)
	}

	stdout, stderr, err := p.runner.Run(ctx, dir, p.binary, "-o", "svg", input)
	log := p.log.WithFields(logrus.Fields{"input": input, "length": len(seq)})
	log.WithFields(logrus.Fields{"stdout": string(stdout), "stderr": string(stderr)}).Debug("RNAplot finished")
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w; stderr: %s", p.binary, err, strings.TrimSpace(string(stderr)))
	}

	svgPath, err := findSVG(dir, base)
	if err != nil {
		return nil, err
	}
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	return svg, nil
}

func validate(seq, structure string) error {
	if seq == "" {
		return fmt.Errorf("%w: sequence is empty", ErrInvalidInput)
	}
	if len(seq) != len(structure) {
		return fmt.Errorf("%w: length mismatch: sequence (%d), structure (%d)", ErrInvalidInput, len(seq), len(structure))
	}
	if strings.Trim(structure, "().") != "" {
		return fmt.Errorf("%w: structure must contain only '(', ')' and '.'", ErrInvalidInput)
	}
	return nil
}

// findSVG tìm <base>_ss.svg, nếu không có thì lấy file .svg đầu tiên theo tên
func findSVG(dir, base string) (string, error) {
	expected := filepath.Join(dir, base+"_ss.svg")
	if _, err := os.Stat(expected); err == nil {
		return expected, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list plot output: %w", err)
	}
	var svgs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".svg") {
			svgs = append(svgs, e.Name())
		}
	}
	if len(svgs) == 0 {
		return "", errors.New("RNAplot did not produce any SVG")
	}
	sort.Strings(svgs)
	return filepath.Join(dir, svgs[0]), nil
}
