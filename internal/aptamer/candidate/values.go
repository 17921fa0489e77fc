package candidate

import (
	"encoding/json"
	"fmt"
	"math"
)

// NotAvailable là chuỗi hiển thị cho giá trị vắng mặt
const NotAvailable = "N/A"

// Energy là năng lượng tự do (kcal/mol) có thể vắng mặt.
// Giá trị đúng bằng 0 được hiển thị là "N/A".
type Energy struct {
	value float64
	known bool
}

// EnergyOf tạo Energy có giá trị
func EnergyOf(v float64) Energy {
	return Energy{value: v, known: true}
}

// UnknownEnergy tạo Energy vắng mặt
func UnknownEnergy() Energy {
	return Energy{}
}

// Value trả về giá trị và cờ có mặt
func (e Energy) Value() (float64, bool) {
	return e.value, e.known
}

// Displayable là false khi vắng mặt hoặc đúng bằng 0
func (e Energy) Displayable() bool {
	return e.known && e.value != 0
}

func (e Energy) String() string {
	if !e.Displayable() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", e.value)
}

// MarshalJSON hiển thị dạng chuỗi, ví dụ "-12.30" hoặc "N/A"
func (e Energy) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// Tm là nhiệt độ nóng chảy (°C) có thể vắng mặt khi oracle thất bại
type Tm struct {
	celsius   float64
	available bool
}

// TmOf tạo Tm có giá trị; NaN/Inf được xem là vắng mặt
func TmOf(c float64) Tm {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return Tm{}
	}
	return Tm{celsius: c, available: true}
}

// TmUnavailable tạo Tm vắng mặt
func TmUnavailable() Tm {
	return Tm{}
}

// Celsius trả về giá trị và cờ có mặt
func (t Tm) Celsius() (float64, bool) {
	return t.celsius, t.available
}

// Available cho biết Tm có giá trị
func (t Tm) Available() bool {
	return t.available
}

func (t Tm) String() string {
	if !t.available {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", t.celsius)
}

// MarshalJSON trả về số hoặc null
func (t Tm) MarshalJSON() ([]byte, error) {
	if !t.available {
		return []byte("null"), nil
	}
	return json.Marshal(t.celsius)
}

// KdKind phân loại kết quả hằng số phân ly
type KdKind int

const (
	KdUnavailable KdKind = iota
	KdValue
	KdBelowThreshold
	KdAboveThreshold
)

// Ngưỡng hiển thị Kd (nM)
const (
	KdLowerBoundNM = 0.01
	KdUpperBoundNM = 1e8
)

// Kd là hằng số phân ly (nM) dạng tagged variant
type Kd struct {
	Kind      KdKind
	Nanomolar float64 // chỉ có nghĩa khi Kind == KdValue
}

// KdOf phân loại giá trị nM theo ngưỡng
func KdOf(nm float64) Kd {
	switch {
	case math.IsNaN(nm) || math.IsInf(nm, 0):
		return Kd{Kind: KdUnavailable}
	case nm < KdLowerBoundNM:
		return Kd{Kind: KdBelowThreshold}
	case nm > KdUpperBoundNM:
		return Kd{Kind: KdAboveThreshold}
	}
	return Kd{Kind: KdValue, Nanomolar: nm}
}

// KdUnknown tạo Kd vắng mặt
func KdUnknown() Kd {
	return Kd{Kind: KdUnavailable}
}

func (k Kd) String() string {
	switch k.Kind {
	case KdValue:
		return fmt.Sprintf("%.2f", k.Nanomolar)
	case KdBelowThreshold:
		return "<0.01"
	case KdAboveThreshold:
		return ">1E8"
	}
	return NotAvailable
}

// MarshalJSON hiển thị dạng chuỗi: "47.12", "<0.01", ">1E8" hoặc "N/A"
func (k Kd) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}
