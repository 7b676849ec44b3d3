// Package career covers the income side of the simulation: salary with its
// modifiers, living expenses, experience accrual, study progression and job
// requirement checks.
package career

import (
	"math"

	"github.com/rustyeddy/decade/game"
)

// Salary is the monthly pay: base salary times one plus the permanent
// course bonuses plus the work-intensity adjustment, floored to a whole
// amount. Unemployed players earn nothing.
func Salary(job *game.Job, completedCourses []string, intensity game.Intensity) float64 {
	if job == nil {
		return 0
	}
	multiplier := 1.0
	for _, id := range completedCourses {
		if course, ok := game.FindCourse(id); ok {
			multiplier += course.SalaryBonus
		}
	}
	multiplier += intensity.SalaryAdjust()
	return math.Floor(job.Salary * multiplier)
}

// Expenses scales the cost of living with income.
func Expenses(salary float64) float64 {
	return 800 + salary*0.2
}

// CanApply reports whether the player qualifies for a job. Education levels
// are ordered and experience is counted per category.
func CanApply(education game.EducationLevel, experience map[game.JobCategory]float64, job game.Job) error {
	if education < job.ReqEducation {
		return game.ErrEducationRequired
	}
	if experience[job.Category] < job.ReqExpYears {
		return game.ErrExperienceRequired
	}
	return nil
}

// DividendsDue reports whether the month being simulated is a quarter end.
func DividendsDue(gameMonth int) bool {
	return (gameMonth%12+1)%3 == 0
}

// Dividends totals the quarterly payout over all held instruments. Yields
// are annual, so a quarter pays a fourth.
func Dividends(instruments []game.Instrument) float64 {
	var total float64
	for _, instr := range instruments {
		if instr.Owned > 0 && instr.DividendYield > 0 {
			total += instr.Price * instr.DividendYield / 4 * instr.Owned
		}
	}
	return total
}

// StudyResult reports what completed when a study countdown hits zero.
type StudyResult struct {
	Done     bool
	Degree   bool
	Level    game.EducationLevel
	CourseID string
}

// AdvanceStudy decrements an in-progress study by one month and reports
// completion. The caller applies the completion to the snapshot.
func AdvanceStudy(study *game.Study) StudyResult {
	if study == nil {
		return StudyResult{}
	}
	study.MonthsLeft--
	if study.MonthsLeft > 0 {
		return StudyResult{}
	}
	if study.Kind == game.StudyDegree {
		return StudyResult{Done: true, Degree: true, Level: study.Level}
	}
	return StudyResult{Done: true, CourseID: study.CourseID}
}
