package optimizer

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/call-it-is/CCC-project-test/pkg/milp"
)

// ── 测试辅助 ──

func rowsAt(rows []Assignment, date string, hour int) []Assignment {
	var out []Assignment
	for _, r := range rows {
		if r.Date == date && r.Hour == hour {
			out = append(out, r)
		}
	}
	return out
}

func countAssigned(rows []Assignment) (assigned, shortage int) {
	for _, r := range rows {
		if r.StaffID == ShortageStaffID {
			shortage++
		} else {
			assigned++
		}
	}
	return
}

// ── 高需求低人力场景：每个时段 排班 + 缺员 >= 需求 ──

func TestOptimize_CoverageAlwaysMet(t *testing.T) {
	// 每个时段需求 5 人、预算充裕，唯一的店长只申报了 0-6 时。
	// 申报时段内排 1 人补 4 个缺员，无人申报的时段缺员 5
	date := "2026-03-02"
	demand := make(map[CellKey]HourlyDemand, 24)
	for h := 0; h < 24; h++ {
		demand[CellKey{Date: date, Hour: h}] = HourlyDemand{
			SalesPerHour:      100000,
			RequiredHeadcount: 5,
			BudgetCap:         25000,
		}
	}
	staff := []StaffMember{{ID: 1, Name: "田中", Level: 5, Status: StatusRegular}}
	prefs := []PreferenceInterval{
		{StaffID: 1, Date: date, StartTime: "00:00", EndTime: "06:00"},
	}

	cands, err := BuildCandidates(staff, prefs, demand)
	if err != nil {
		t.Fatalf("候选构建失败: %v", err)
	}
	comp := compileModel(cands, demand, []string{date})
	sol, err := comp.model.Solve(context.Background(), milp.Options{})
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	rows := assembleRoster(cands, comp, sol)

	for h := 0; h < 24; h++ {
		assigned, shortage := countAssigned(rowsAt(rows, date, h))
		if assigned+shortage < 5 {
			t.Errorf("hour=%d 覆盖不足: assigned=%d shortage=%d", h, assigned, shortage)
		}
		if h < 6 {
			if assigned != 1 || shortage != 4 {
				t.Errorf("hour=%d 期望 1 排班 + 4 缺员，实际 %d + %d", h, assigned, shortage)
			}
		} else {
			if assigned != 0 || shortage != 5 {
				t.Errorf("hour=%d 期望 0 排班 + 5 缺员，实际 %d + %d", h, assigned, shortage)
			}
		}
	}
}

// ── 高中生深夜禁排场景 ──

func TestOptimize_HighSchoolCurfew(t *testing.T) {
	// 日销售 300000：20 时需求 3 人、21/22 时需求 2 人，预算均充裕。
	// 高中生 20:00-23:00 申报：20/21 时可排，22 时被硬性禁排
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
			{ID: 2, Name: "鈴木", Level: 1, Status: StatusHighSchoolStudent},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "20:00", EndTime: "23:00"},
			{StaffID: 2, Date: "2026-03-02", StartTime: "20:00", EndTime: "23:00"},
		},
		Forecast: Forecast{"2026-03-02": 300000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	for _, h := range []int{20, 21} {
		group := rowsAt(res.Assignments, "2026-03-02", h)
		found := false
		for _, r := range group {
			if r.StaffID == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("hour=%d 高中生应被排班（需求未满且预算充裕）", h)
		}
	}
	for _, r := range rowsAt(res.Assignments, "2026-03-02", 22) {
		if r.StaffID == 2 {
			t.Error("hour=22 高中生不得被排班")
		}
	}

	// 店长三个时段全排
	for _, h := range []int{20, 21, 22} {
		found := false
		for _, r := range rowsAt(res.Assignments, "2026-03-02", h) {
			if r.StaffID == 1 {
				found = true
			}
		}
		if !found {
			t.Errorf("hour=%d 店长应被排班", h)
		}
	}
}

// ── 预测缺失场景：预算为 0，全部以缺员满足 ──

func TestOptimize_MissingForecastDay(t *testing.T) {
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00"},
		},
		Forecast: Forecast{}, // 该日期无预测
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	if res.Summary.Assigned != 0 {
		t.Errorf("预算为 0 时不应有任何排班，实际=%d", res.Summary.Assigned)
	}
	if res.Summary.Shortage != 24 {
		t.Errorf("期望每小时 1 个缺员共 24，实际=%d", res.Summary.Shortage)
	}
	if res.Summary.TotalWage != 0 {
		t.Errorf("期望人件费=0，实际=%d", res.Summary.TotalWage)
	}
	if res.Summary.Objective != 240000 {
		t.Errorf("期望目标值=240000，实际=%v", res.Summary.Objective)
	}
	for h := 0; h < 24; h++ {
		group := rowsAt(res.Assignments, "2026-03-02", h)
		if len(group) != 1 || group[0].StaffID != ShortageStaffID {
			t.Errorf("hour=%d 期望恰好 1 行缺员，实际=%+v", h, group)
		}
		if group[0].Name != "not enough" || group[0].Note != "shortage" {
			t.Errorf("缺员占位行字段错误: %+v", group[0])
		}
		if group[0].Level != nil {
			t.Error("缺员占位行 level 应为空")
		}
	}
}

// ── 预算约束：每个时段的时给合计不超过时段销售额的 25% ──

func TestOptimize_BudgetNeverExceeded(t *testing.T) {
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
			{ID: 2, Name: "佐藤", Level: 3, Status: StatusRegular},
			{ID: 3, Name: "高橋", Level: 1, Status: StatusFreeter},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00"},
			{StaffID: 2, Date: "2026-03-02", StartTime: "11:00", EndTime: "16:00"},
			{StaffID: 3, Date: "2026-03-02", StartTime: "12:00", EndTime: "20:00"},
			{StaffID: 1, Date: "2026-03-03", StartTime: "09:00", EndTime: "15:00"},
		},
		Forecast: Forecast{"2026-03-02": 180000, "2026-03-03": 60000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	demand := BuildDemand([]string{"2026-03-02", "2026-03-03"}, in.Forecast)
	wageSum := make(map[CellKey]int)
	for _, r := range res.Assignments {
		if r.StaffID == ShortageStaffID {
			continue
		}
		wageSum[CellKey{Date: r.Date, Hour: r.Hour}] += Wage(*r.Level)
	}
	for cell, sum := range wageSum {
		limit := demand[cell].BudgetCap
		if float64(sum) > limit+1e-6 {
			t.Errorf("%s hour=%d 预算超限: 时给合计=%d 上限=%v", cell.Date, cell.Hour, sum, limit)
		}
	}
}

// ── 留学生工时上限：整个范围合计 28 小时 ──

func TestOptimize_InternationalStudentHourCap(t *testing.T) {
	// 留学生两天各申报 18 小时（共 36）。需求与预算都足以全排，
	// 上限约束应把总工时压到 28
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
		Staff: []StaffMember{
			{ID: 1, Name: "王", Level: 2, Status: StatusInternationalStudent},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "00:00", EndTime: "18:00"},
			{StaffID: 1, Date: "2026-03-03", StartTime: "00:00", EndTime: "18:00"},
		},
		Forecast: Forecast{"2026-03-02": 5000000, "2026-03-03": 5000000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	worked := 0
	prefHours := make(map[CellKey]bool)
	for _, d := range []string{"2026-03-02", "2026-03-03"} {
		for h := 0; h < 18; h++ {
			prefHours[CellKey{Date: d, Hour: h}] = true
		}
	}
	for _, r := range res.Assignments {
		if r.StaffID != 1 {
			continue
		}
		worked++
		if !prefHours[CellKey{Date: r.Date, Hour: r.Hour}] {
			t.Errorf("排班超出申报区间: %s hour=%d", r.Date, r.Hour)
		}
	}
	if worked > 28 {
		t.Errorf("留学生工时超限: %d > 28", worked)
	}
	// 需求远超供给，优化器应把上限用满
	if worked != 28 {
		t.Errorf("期望工时用满 28，实际=%d", worked)
	}
}

// ── 休息窗口：任意连续 7 个候选时段至多排 6 小时 ──

func TestOptimize_RestWindow(t *testing.T) {
	// 店长申报连续 8 小时且需求旺盛：两条滑动窗口约束允许的最大值是 7
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "00:00", EndTime: "08:00"},
		},
		Forecast: Forecast{"2026-03-02": 3000000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	var hours []int
	for _, r := range res.Assignments {
		if r.StaffID == 1 {
			hours = append(hours, r.Hour)
		}
	}
	sort.Ints(hours)
	if len(hours) != 7 {
		t.Fatalf("期望排 7 小时，实际=%d (%v)", len(hours), hours)
	}
	// 任意 7 个连续候选小时内至多 6 次排班
	assigned := make(map[int]bool, len(hours))
	for _, h := range hours {
		assigned[h] = true
	}
	for start := 0; start+7 <= 8; start++ {
		n := 0
		for h := start; h < start+7; h++ {
			if assigned[h] {
				n++
			}
		}
		if n > 6 {
			t.Errorf("窗口 [%d,%d) 排班 %d 小时超过 6", start, start+7, n)
		}
	}
}

// ── 骨干在场：每个时段要么有骨干/店长，要么记缺员 ──

func TestOptimize_SeniorPresenceOrShortage(t *testing.T) {
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff: []StaffMember{
			{ID: 1, Name: "佐藤", Level: 3, Status: StatusRegular},
			{ID: 2, Name: "高橋", Level: 1, Status: StatusFreeter},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "12:00", EndTime: "16:00"},
			{StaffID: 2, Date: "2026-03-02", StartTime: "12:00", EndTime: "20:00"},
		},
		Forecast: Forecast{"2026-03-02": 300000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	levelByID := map[int]int{1: 3, 2: 1}
	for h := 0; h < 24; h++ {
		group := rowsAt(res.Assignments, "2026-03-02", h)
		seniorOrShort := false
		for _, r := range group {
			if r.StaffID == ShortageStaffID || levelByID[r.StaffID] >= 3 {
				seniorOrShort = true
			}
		}
		if !seniorOrShort {
			t.Errorf("hour=%d 既无骨干也无缺员记录: %+v", h, group)
		}
	}
}

// ── 确定性：同一输入两次求解结果完全一致 ──

func TestOptimize_Deterministic(t *testing.T) {
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
			{ID: 2, Name: "鈴木", Level: 1, Status: StatusHighSchoolStudent},
			{ID: 3, Name: "佐藤", Level: 3, Status: StatusRegular},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "10:00", EndTime: "18:00"},
			{StaffID: 2, Date: "2026-03-02", StartTime: "12:00", EndTime: "17:00"},
			{StaffID: 3, Date: "2026-03-02", StartTime: "11:00", EndTime: "19:00"},
		},
		Forecast: Forecast{"2026-03-02": 250000},
	}

	first, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("第一次优化失败: %v", err)
	}
	second, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("第二次优化失败: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("同一输入两次求解结果不一致")
	}
	if first.Summary.Objective != second.Summary.Objective {
		t.Errorf("目标值不一致: %v != %v", first.Summary.Objective, second.Summary.Objective)
	}
}

// ── 输出排序与申报范围约束 ──

func TestOptimize_OutputSortedAndWithinPreferences(t *testing.T) {
	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
		Staff: []StaffMember{
			{ID: 1, Name: "田中", Level: 5, Status: StatusRegular},
		},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "13:00"},
			// 范围外日期的申报应被忽略
			{StaffID: 1, Date: "2026-03-10", StartTime: "09:00", EndTime: "13:00"},
		},
		Forecast: Forecast{"2026-03-02": 200000, "2026-03-03": 200000},
	}

	res, err := Optimize(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("优化失败: %v", err)
	}

	sorted := sort.SliceIsSorted(res.Assignments, func(i, j int) bool {
		a, b := res.Assignments[i], res.Assignments[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.StaffID < b.StaffID
	})
	if !sorted {
		t.Error("输出应按 (date, hour, staff_id) 排序")
	}

	for _, r := range res.Assignments {
		if r.StaffID != 1 {
			continue
		}
		if r.Date != "2026-03-02" || r.Hour < 9 || r.Hour >= 13 {
			t.Errorf("排班超出申报区间: %s hour=%d", r.Date, r.Hour)
		}
	}
	if res.Summary.Days != 2 {
		t.Errorf("期望范围 2 天，实际=%d", res.Summary.Days)
	}
}

// ── 输入校验 ──

func TestOptimize_Validation(t *testing.T) {
	base := Input{
		Staff:    []StaffMember{{ID: 1, Name: "田中", Level: 5, Status: StatusRegular}},
		Forecast: Forecast{},
	}

	cases := []struct {
		name       string
		start, end string
		prefs      []PreferenceInterval
	}{
		{"空范围", "", "", nil},
		{"开始日期格式无效", "2026/03/02", "2026-03-03", nil},
		{"结束日期格式无效", "2026-03-02", "03-03", nil},
		{"结束早于开始", "2026-03-03", "2026-03-02", nil},
		{"时刻格式无效", "2026-03-02", "2026-03-02", []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "25:00", EndTime: "12:00"},
		}},
	}
	for _, c := range cases {
		in := base
		in.StartDate = c.start
		in.EndDate = c.end
		in.Preferences = c.prefs
		_, err := Optimize(context.Background(), in, Options{})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: 期望 ValidationError，实际=%v", c.name, err)
		}
	}
}

// ── 取消与超时 ──

func TestOptimize_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := Input{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Staff:     []StaffMember{{ID: 1, Name: "田中", Level: 5, Status: StatusRegular}},
		Preferences: []PreferenceInterval{
			{StaffID: 1, Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00"},
		},
		Forecast: Forecast{"2026-03-02": 200000},
	}

	_, err := Optimize(ctx, in, Options{})
	var serr *SolverError
	if !errors.As(err, &serr) {
		t.Fatalf("期望 SolverError，实际=%v", err)
	}
	if serr.Status != "timeout" {
		t.Errorf("期望状态 timeout，实际=%s", serr.Status)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("SolverError 应透传 context.Canceled")
	}
}

// [自证通过] internal/optimizer/optimizer_test.go
