// Package metrics tính các chỉ số của một trình tự RNA: GC%, cấu trúc MFE, Tm và Kd ước lượng.
package metrics

import (
	"context"
	"fmt"
	"math"

	"aptamer_api/internal/aptamer/candidate"
	"aptamer_api/internal/rnafold"
	"aptamer_api/internal/sequence"
	"aptamer_api/internal/thermo"
)

// Hằng số cho ước lượng Kd: R (kcal/(mol·K)) và T (K)
const (
	GasConstantKcal = 1.987e-3
	TemperatureK    = 298.0
)

// Folder là oracle gấp RNA; phải trả về lỗi của ctx khi bị hủy giữa chừng
type Folder interface {
	Fold(ctx context.Context, seq string) (structure string, energy float64, err error)
}

// MeltingModel là oracle Tm
type MeltingModel interface {
	MeltingTemp(seq string) (float64, error)
}

// Calculator gom các oracle; không giữ trạng thái thay đổi nên dùng chung giữa các request
type Calculator struct {
	folder  Folder
	melting MeltingModel
}

// NewCalculator tạo calculator với oracle tùy chọn
func NewCalculator(folder Folder, melting MeltingModel) *Calculator {
	return &Calculator{folder: folder, melting: melting}
}

// NewDefaultCalculator dùng rnafold và thermo (RNA NN1)
func NewDefaultCalculator() *Calculator {
	return NewCalculator(rnafold.NewFolder(), thermo.NewRNAModel())
}

// GCContent trả về % G+C làm tròn 2 chữ số (round-half-even), 0 với chuỗi rỗng
func GCContent(seq string) float64 {
	if seq == "" {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			gc++
		}
	}
	return round2(float64(gc) / float64(len(seq)) * 100)
}

// FoldStructureAndEnergy gấp seq. Chuỗi rỗng hoặc chứa ký tự ngoài AUGC (sau khi viết hoa)
// trả về ("", 0) mà không gọi oracle. Lỗi oracle được trả về cho caller.
func (c *Calculator) FoldStructureAndEnergy(ctx context.Context, seq string) (string, candidate.Energy, error) {
	upper := toUpperASCII(seq)
	if !sequence.IsRNA(upper) {
		return "", candidate.EnergyOf(0), nil
	}

	structure, energy, err := c.folder.Fold(ctx, upper)
	if err != nil {
		return "", candidate.UnknownEnergy(), fmt.Errorf("fold %d-nt sequence: %w", len(upper), err)
	}
	return structure, candidate.EnergyOf(round2(energy)), nil
}

// MeltingTemperature trả về Tm làm tròn 2 chữ số; mọi lỗi của oracle thành vắng mặt
func (c *Calculator) MeltingTemperature(seq string) candidate.Tm {
	tm, err := c.melting.MeltingTemp(seq)
	if err != nil {
		return candidate.TmUnavailable()
	}
	return candidate.TmOf(round2(tm))
}

// DissociationConstant ước lượng Kd (nM) từ MFE: K = exp(−ΔG/RT), Kd = 1/K.
// Năng lượng vắng mặt hoặc bằng 0 cho kết quả vắng mặt.
func DissociationConstant(energy candidate.Energy) candidate.Kd {
	dg, ok := energy.Value()
	if !ok || dg == 0 {
		return candidate.KdUnknown()
	}

	k := math.Exp(-dg / (GasConstantKcal * TemperatureK))
	if k == 0 || math.IsInf(k, 0) || math.IsNaN(k) {
		return candidate.KdUnknown()
	}
	return candidate.KdOf(1 / k * 1e9)
}

// round2 làm tròn 2 chữ số, trường hợp đúng giữa thì về số chẵn (53.125 -> 53.12)
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'a' && ch <= 'z' {
			b[i] = ch - 'a' + 'A'
		}
	}
	return string(b)
}
