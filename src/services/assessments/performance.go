package assessments

import (
	"context"
	"sort"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AverageScore averages finalScore over VALIDATED records. Records without a
// score are ignored. ok is false when nothing was scored.
func AverageScore(list []models.DailyAssessment) (avg float64, count int, ok bool) {
	sum := 0.0
	for _, a := range list {
		if a.Status != models.AssessmentValidated || a.FinalScore == nil {
			continue
		}
		sum += *a.FinalScore
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return sum / float64(count), count, true
}

// RankPerformance groups records by employee in first-seen order and sorts by
// average descending. Ties keep input order.
func RankPerformance(list []models.DailyAssessment) []models.EmployeePerformance {
	order := []primitive.ObjectID{}
	groups := map[primitive.ObjectID][]models.DailyAssessment{}
	for _, a := range list {
		if _, ok := groups[a.EmployeeID]; !ok {
			order = append(order, a.EmployeeID)
		}
		groups[a.EmployeeID] = append(groups[a.EmployeeID], a)
	}

	rows := make([]models.EmployeePerformance, 0, len(order))
	for _, id := range order {
		avg, count, ok := AverageScore(groups[id])
		if !ok {
			continue
		}
		rows = append(rows, models.EmployeePerformance{
			EmployeeID: id.Hex(),
			Average:    avg,
			Percentage: avg * 100,
			Count:      count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})
	return rows
}

// EmployeePerformance reports one employee's mean score, optionally for a month.
func (s *Service) EmployeePerformance(ctx context.Context, employeeID, month string) (*models.EmployeePerformance, error) {
	objID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	month, err = utils.MonthPrefix(month)
	if err != nil {
		return nil, err
	}

	list, err := s.store.ListAssessments(ctx, AssessmentFilter{
		EmployeeID: &objID,
		Month:      month,
		Statuses:   []string{models.AssessmentValidated},
	})
	if err != nil {
		return nil, err
	}

	avg, count, _ := AverageScore(list)
	row := &models.EmployeePerformance{
		EmployeeID: employeeID,
		Average:    avg,
		Percentage: avg * 100,
		Count:      count,
	}
	if s.directory != nil {
		if names, err := s.directory.Names(ctx, []primitive.ObjectID{objID}); err == nil {
			row.EmployeeName = names[objID]
		}
	}
	return row, nil
}

// Leaderboard ranks every employee with at least one scored record.
func (s *Service) Leaderboard(ctx context.Context, month string) ([]models.EmployeePerformance, error) {
	month, err := utils.MonthPrefix(month)
	if err != nil {
		return nil, err
	}
	var gen int64
	if s.cache != nil {
		rows, g, ok := s.cache.Get(ctx, month)
		if ok {
			return rows, nil
		}
		gen = g
	}

	list, err := s.store.ListAssessments(ctx, AssessmentFilter{
		Month:    month,
		Statuses: []string{models.AssessmentValidated},
	})
	if err != nil {
		return nil, err
	}
	rows := RankPerformance(list)

	if s.directory != nil && len(rows) > 0 {
		ids := make([]primitive.ObjectID, 0, len(rows))
		for _, r := range rows {
			id, _ := primitive.ObjectIDFromHex(r.EmployeeID)
			ids = append(ids, id)
		}
		names, err := s.directory.Names(ctx, ids)
		if err != nil {
			logger.Log.Warn("⚠️ Failed to resolve employee names", zap.Error(err))
		} else {
			for i := range rows {
				id, _ := primitive.ObjectIDFromHex(rows[i].EmployeeID)
				rows[i].EmployeeName = names[id]
			}
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, month, gen, rows)
	}
	return rows, nil
}
