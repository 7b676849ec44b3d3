package game

import (
	"errors"
	"fmt"
)

const (
	MaxYears          = 10
	MaxMonths         = MaxYears * 12
	StartingAgeMonths = 18 * 12
	StartingCash      = 5000.0

	// Messages keeps only the most recent entries.
	MaxMessages = 50
)

var (
	ErrGameOver             = errors.New("game is over")
	ErrTickInFlight         = errors.New("a month advance is already in flight")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrInsufficientDeposit  = errors.New("insufficient deposit balance")
	ErrLoanLimitExceeded    = errors.New("loan exceeds available credit")
	ErrRepayExceedsDebt     = errors.New("repayment exceeds outstanding debt")
	ErrNotEmployed          = errors.New("not currently employed")
	ErrStudyInProgress      = errors.New("another study is already in progress")
	ErrEducationRequired    = errors.New("education requirement not met")
	ErrExperienceRequired   = errors.New("experience requirement not met")
	ErrAlreadyCompleted     = errors.New("already completed")
	ErrUnknownSymbol        = errors.New("unknown instrument symbol")
	ErrUnknownJob           = errors.New("unknown job")
	ErrUnknownCourse        = errors.New("unknown course")
)

// EducationLevel is an ordered ladder. Comparisons use the numeric order,
// NONE < HIGH_SCHOOL < BACHELOR < MASTER < MBA.
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationBachelor
	EducationMaster
	EducationMBA
)

var educationNames = map[EducationLevel]string{
	EducationNone:       "NONE",
	EducationHighSchool: "HIGH_SCHOOL",
	EducationBachelor:   "BACHELOR",
	EducationMaster:     "MASTER",
	EducationMBA:        "MBA",
}

var educationLabels = map[EducationLevel]string{
	EducationNone:       "No Education",
	EducationHighSchool: "High School",
	EducationBachelor:   "Bachelor",
	EducationMaster:     "Master",
	EducationMBA:        "MBA",
}

func (l EducationLevel) String() string { return educationNames[l] }

// Label is the human-readable form used in narration and prompts.
func (l EducationLevel) Label() string { return educationLabels[l] }

func ParseEducationLevel(s string) (EducationLevel, error) {
	for lvl, name := range educationNames {
		if name == s {
			return lvl, nil
		}
	}
	return EducationNone, fmt.Errorf("unknown education level %q", s)
}

type JobCategory string

const (
	CategoryService  JobCategory = "service"
	CategoryBusiness JobCategory = "business"
	CategoryTech     JobCategory = "tech"
	CategoryMedical  JobCategory = "medical"
)

var categoryLabels = map[JobCategory]string{
	CategoryService:  "Service Industry",
	CategoryBusiness: "Business & Finance",
	CategoryTech:     "Tech & IT",
	CategoryMedical:  "Healthcare",
}

func (c JobCategory) Label() string { return categoryLabels[c] }

// Intensity trades income and experience against burnout risk.
type Intensity string

const (
	IntensityRelaxed Intensity = "relaxed"
	IntensityNormal  Intensity = "normal"
	IntensityHard    Intensity = "hard"
)

// SalaryAdjust is added to the salary multiplier for the intensity.
func (i Intensity) SalaryAdjust() float64 {
	switch i {
	case IntensityRelaxed:
		return -0.2
	case IntensityHard:
		return 0.2
	default:
		return 0
	}
}

// ExperienceGrowth returns years of experience gained per month.
func (i Intensity) ExperienceGrowth() float64 {
	switch i {
	case IntensityRelaxed:
		return 0.5 / 12
	case IntensityHard:
		return 1.5 / 12
	default:
		return 1.0 / 12
	}
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Kind separates equities from crypto instruments.
type Kind string

const (
	KindStock  Kind = "stock"
	KindCrypto Kind = "crypto"
)

// PriceModel selects the stochastic process an instrument follows.
type PriceModel string

const (
	// ModelTrending is the ordinary equity walk with volatility scaling.
	ModelTrending PriceModel = "trending"
	// ModelMeanRevert pulls toward MeanTarget each month.
	ModelMeanRevert PriceModel = "mean_revert"
	// ModelPumpDump jumps discontinuously with a small probability.
	ModelPumpDump PriceModel = "pump_dump"
	// ModelClassic is plain proportional noise with trend.
	ModelClassic PriceModel = "classic"
)

type Instrument struct {
	Symbol        string     `json:"symbol" yaml:"symbol"`
	Name          string     `json:"name" yaml:"name"`
	Kind          Kind       `json:"kind" yaml:"kind"`
	Model         PriceModel `json:"model" yaml:"model"`
	Price         float64    `json:"price" yaml:"price"`
	Owned         float64    `json:"owned" yaml:"owned"`
	AverageCost   float64    `json:"average_cost" yaml:"average_cost"`
	History       []float64  `json:"history" yaml:"history"`
	Volatility    float64    `json:"volatility" yaml:"volatility"`
	Trend         float64    `json:"trend" yaml:"trend"`
	DividendYield float64    `json:"dividend_yield" yaml:"dividend_yield"`
	// MeanTarget is the anchor price for ModelMeanRevert instruments.
	MeanTarget float64 `json:"mean_target,omitempty" yaml:"mean_target,omitempty"`
}

type Job struct {
	ID           string         `json:"id" yaml:"id"`
	Title        string         `json:"title" yaml:"title"`
	Category     JobCategory    `json:"category" yaml:"category"`
	Salary       float64        `json:"salary" yaml:"salary"`
	ReqEducation EducationLevel `json:"req_education" yaml:"req_education"`
	ReqExpYears  float64        `json:"req_exp_years" yaml:"req_exp_years"`
}

type Course struct {
	ID             string  `json:"id" yaml:"id"`
	Title          string  `json:"title" yaml:"title"`
	Cost           float64 `json:"cost" yaml:"cost"`
	SalaryBonus    float64 `json:"salary_bonus" yaml:"salary_bonus"`
	Description    string  `json:"description" yaml:"description"`
	DurationMonths int     `json:"duration_months" yaml:"duration_months"`
}

type StudyKind string

const (
	StudyDegree StudyKind = "degree"
	StudyCourse StudyKind = "course"
)

// Study is the at-most-one in-progress degree or course.
type Study struct {
	Kind       StudyKind      `json:"kind"`
	Level      EducationLevel `json:"level,omitempty"`
	CourseID   string         `json:"course_id,omitempty"`
	MonthsLeft int            `json:"months_left"`
}

type Message struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
	Date     string   `json:"date"`
}

// Sample is one (month, net worth) point of the wealth curve.
type Sample struct {
	Month    int     `json:"month"`
	NetWorth float64 `json:"net_worth"`
}
