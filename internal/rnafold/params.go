package rnafold

import "math"

// Năng lượng tính bằng dcal/mol (1 = 0.01 kcal/mol), nhiệt độ 37°C.
// Bộ tham số rút gọn từ Turner 2004.

const (
	inf = 100000000

	minHairpin = 3  // số base không ghép tối thiểu trong hairpin
	maxLoop    = 30 // tổng kích thước tối đa của bulge/interior loop

	terminalAU      = 50  // phạt cặp AU/GU ở đầu helix
	hairpinMismatch = -80 // thưởng mismatch đầu cuối cho hairpin > 3
	interiorAUGU    = 70  // phạt mỗi cặp AU/GU đóng interior loop
	ninio           = 60  // phạt bất đối xứng mỗi nucleotide
	maxNinio        = 300

	mlClosing = 340 // a: đóng multiloop
	mlBase    = 0   // b: mỗi base không ghép trong multiloop
	mlIntern  = 40  // c: mỗi nhánh trong multiloop

	lxc = 107.856 // hệ số ngoại suy logarit cho loop lớn
)

// Kiểu cặp base
const (
	pairNone = iota
	pairCG
	pairGC
	pairGU
	pairUG
	pairAU
	pairUA
)

// stack37[t1][t2]: t1 là cặp ngoài (i,j), t2 là cặp trong đọc ngược (q,p)
var stack37 = [7][7]int{
	{},
	{0, -240, -330, -210, -140, -210, -210},
	{0, -330, -340, -250, -150, -220, -240},
	{0, -210, -250, 130, -50, -140, -130},
	{0, -140, -150, -50, 30, -60, -100},
	{0, -210, -220, -140, -60, -110, -90},
	{0, -210, -240, -130, -100, -90, -130},
}

// theo kích thước loop; các ô inf không dùng
var (
	hairpin37  = []int{inf, inf, inf, 540, 560, 570, 540, 600, 550, 640}
	bulge37    = []int{inf, 380, 280, 320, 360, 400, 440}
	interior37 = []int{inf, inf, 50, 160, 110, 200, 200}
)

func pairType(a, b byte) int {
	switch a {
	case 'C':
		if b == 'G' {
			return pairCG
		}
	case 'G':
		switch b {
		case 'C':
			return pairGC
		case 'U':
			return pairGU
		}
	case 'U':
		switch b {
		case 'G':
			return pairUG
		case 'A':
			return pairUA
		}
	case 'A':
		if b == 'U' {
			return pairAU
		}
	}
	return pairNone
}

// auPenalty áp dụng cho cặp AU/UA/GU/UG
func auPenalty(t int) int {
	if t >= pairGU {
		return terminalAU
	}
	return 0
}

// extrapolate tra bảng theo kích thước, vượt bảng thì ngoại suy logarit từ ô cuối
func extrapolate(table []int, size int) int {
	last := len(table) - 1
	if size <= last {
		return table[size]
	}
	return table[last] + int(math.Round(lxc*math.Log(float64(size)/float64(last))))
}

func hairpinEnergy(t, size int) int {
	if size < minHairpin {
		return inf
	}
	e := extrapolate(hairpin37, size)
	if size == minHairpin {
		e += auPenalty(t)
	} else {
		e += hairpinMismatch
	}
	return e
}

// interiorEnergy tính năng lượng loop giữa cặp ngoài (t) và cặp trong (t2), l1/l2 là số base không ghép hai bên
func interiorEnergy(t, t2, l1, l2 int) int {
	switch {
	case l1 == 0 && l2 == 0:
		return stack37[t][t2]
	case l1 == 0 || l2 == 0:
		size := l1 + l2
		if size == 1 {
			return bulge37[1] + stack37[t][t2]
		}
		return extrapolate(bulge37, size) + auPenalty(t) + auPenalty(t2)
	}

	size := l1 + l2
	asym := l1 - l2
	if asym < 0 {
		asym = -asym
	}
	e := extrapolate(interior37, size) + min(maxNinio, ninio*asym)
	if t >= pairGU {
		e += interiorAUGU
	}
	if t2 >= pairGU {
		e += interiorAUGU
	}
	return e
}
