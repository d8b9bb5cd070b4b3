package layout

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type Point struct {
	X, Y int
}

// Resolve dimensions for a box
type Dimensions struct {
	Origin        Point // TL corner
	Width, Height int
}

// Bottom is the first row below the box.
func (d Dimensions) Bottom() int {
	return d.Origin.Y + d.Height
}

type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}

type Direction int

const (
	Y Direction = iota
	X
)

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}

	return int(s.rel * float64(size))
}

func (f *Flex) StartLayouting(width, height int) {
	f.Layout(Dimensions{Width: width, Height: height})
}

// Layout hands every item its share of the main axis and calls the boxes
// in item order, then descends into nested flexes.
func (f *Flex) Layout(d Dimensions) {
	if len(f.Items) == 0 {
		return
	}
	total := d.Height
	if f.Dir == X {
		total = d.Width
	}

	mins := make([]int, len(f.Items))
	maxs := make([]int, len(f.Items))
	for i, item := range f.Items {
		mins[i] = max(item.Size.Min.toAbs(total), 0)
		maxs[i] = max(item.Size.Max.toAbs(total), mins[i])
	}
	sizes := Distribute(mins, maxs, total)

	orig := d.Origin
	for i, item := range f.Items {
		dim := Dimensions{Origin: orig, Width: d.Width, Height: sizes[i]}
		orig.Y += sizes[i]
		if f.Dir == X {
			dim = Dimensions{Origin: dim.Origin, Width: sizes[i], Height: d.Height}
			orig = Point{dim.Origin.X + sizes[i], d.Origin.Y}
		}
		if item.Box != nil {
			item.Box(dim)
		}
		if item.Flex != nil {
			item.Flex.Layout(dim)
		}
	}
}

// Distribute splits total between items. Every item gets its minimum, the
// rest goes to the items in order until each one hits its maximum. When
// the minimums alone do not fit they are scaled down instead.
//
// The split is the optimum of
//
//	maximize   sum w_i*y_i
//	subject to y_i <= max_i - min_i
//	           sum y_i <= total - sum min_i
//
// with weights falling off by item position.
func Distribute(mins, maxs []int, total int) []int {
	n := len(mins)
	sumMin := 0
	for _, m := range mins {
		sumMin += m
	}
	if sumMin > total {
		return shrink(mins, total)
	}

	sizes := make([]int, n)
	copy(sizes, mins)
	left := total - sumMin

	// only items that can still grow take part
	var flex []int
	for i := range mins {
		if maxs[i] > mins[i] {
			flex = append(flex, i)
		}
	}
	if len(flex) == 0 || left == 0 {
		return sizes
	}

	// variables: y_0..y_k-1, slack s_0..s_k-1, slack t
	k := len(flex)
	c := make([]float64, 2*k+1)
	A := mat.NewDense(k+1, 2*k+1, nil)
	b := make([]float64, k+1)
	for j, i := range flex {
		c[j] = -float64(k - j)
		A.Set(j, j, 1)
		A.Set(j, k+j, 1)
		b[j] = float64(maxs[i] - mins[i])
		A.Set(k, j, 1)
	}
	A.Set(k, 2*k, 1)
	b[k] = float64(left)

	_, x, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		return sizes
	}
	for j, i := range flex {
		extra := max(min(int(math.Round(x[j])), left), 0)
		sizes[i] += extra
		left -= extra
	}
	return sizes
}

func shrink(mins []int, total int) []int {
	sizes := make([]int, len(mins))
	sum := 0
	for _, m := range mins {
		sum += m
	}
	if sum == 0 || total <= 0 {
		return sizes
	}
	left := total
	for i, m := range mins {
		sizes[i] = min(m*total/sum, left)
		left -= sizes[i]
	}
	return sizes
}
