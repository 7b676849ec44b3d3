package game

import "fmt"

// State is the root snapshot of one running game. The simulation engine
// replaces it wholesale on every committed action or month advance; nothing
// mutates a published State in place.
type State struct {
	AgeMonths int `json:"age_months"`
	GameMonth int `json:"game_month"`

	Cash float64 `json:"cash"`

	Debt        float64 `json:"debt"`
	CreditScore int     `json:"credit_score"`
	CreditLimit int     `json:"credit_limit"`
	LoanRate    float64 `json:"loan_rate"`

	Deposit     float64 `json:"deposit"`
	DepositRate float64 `json:"deposit_rate"`

	NetWorth float64 `json:"net_worth"`

	Education   EducationLevel          `json:"education"`
	Courses     []string                `json:"courses"`
	ActiveStudy *Study                  `json:"active_study,omitempty"`
	Experience  map[JobCategory]float64 `json:"experience"`
	CurrentJob  *Job                    `json:"current_job,omitempty"`
	Intensity   Intensity               `json:"intensity"`

	Instruments []Instrument `json:"instruments"`
	History     []Sample     `json:"history"`
	GameOver    bool         `json:"game_over"`
	Messages    []Message    `json:"messages"`
}

// NewState returns the starting snapshot of a fresh game.
func NewState() *State {
	s := &State{
		AgeMonths:   StartingAgeMonths,
		GameMonth:   0,
		Cash:        StartingCash,
		Debt:        0,
		CreditScore: 650,
		CreditLimit: 10000,
		LoanRate:    0.15,
		Deposit:     0,
		DepositRate: 0.04,
		NetWorth:    StartingCash,
		Education:   EducationNone,
		Courses:     []string{},
		Experience: map[JobCategory]float64{
			CategoryService:  0,
			CategoryBusiness: 0,
			CategoryTech:     0,
			CategoryMedical:  0,
		},
		Intensity:   IntensityNormal,
		Instruments: DefaultInstruments(),
		History:     []Sample{{Month: 0, NetWorth: StartingCash}},
	}
	return s
}

// Clone deep-copies the snapshot so a tick can work on its own value.
func (s *State) Clone() *State {
	out := *s

	// Copy without turning empty slices nil; "courses" must serialize as
	// [] on a fresh game, not null.
	if s.Courses != nil {
		out.Courses = append([]string{}, s.Courses...)
	}
	if s.History != nil {
		out.History = append([]Sample{}, s.History...)
	}
	if s.Messages != nil {
		out.Messages = append([]Message{}, s.Messages...)
	}

	out.Experience = make(map[JobCategory]float64, len(s.Experience))
	for cat, yrs := range s.Experience {
		out.Experience[cat] = yrs
	}

	out.Instruments = make([]Instrument, len(s.Instruments))
	for i, instr := range s.Instruments {
		instr.History = append([]float64(nil), instr.History...)
		out.Instruments[i] = instr
	}

	if s.ActiveStudy != nil {
		study := *s.ActiveStudy
		out.ActiveStudy = &study
	}
	if s.CurrentJob != nil {
		job := *s.CurrentJob
		out.CurrentJob = &job
	}
	return &out
}

// ComputeNetWorth derives total wealth from the snapshot itself. There is
// no independent source of truth: the NetWorth field must always equal
// this value after a commit.
func (s *State) ComputeNetWorth() float64 {
	total := s.Cash + s.Deposit - s.Debt
	for _, instr := range s.Instruments {
		total += instr.Price * instr.Owned
	}
	return total
}

// Instrument returns a pointer into the snapshot's instrument slice.
func (s *State) Instrument(symbol string) (*Instrument, bool) {
	for i := range s.Instruments {
		if s.Instruments[i].Symbol == symbol {
			return &s.Instruments[i], true
		}
	}
	return nil, false
}

// PortfolioValue is the market value of all held instruments.
func (s *State) PortfolioValue() float64 {
	var total float64
	for _, instr := range s.Instruments {
		total += instr.Price * instr.Owned
	}
	return total
}

// DateLabel renders the in-game calendar position, e.g. "Y3 M7".
func (s *State) DateLabel() string {
	return fmt.Sprintf("Y%d M%d", s.GameMonth/12+1, s.GameMonth%12+1)
}

// PushMessage prepends a narration entry, dropping the oldest beyond the cap.
func (s *State) PushMessage(id, text string, sev Severity) {
	msg := Message{ID: id, Text: text, Severity: sev, Date: s.DateLabel()}
	s.Messages = append([]Message{msg}, s.Messages...)
	if len(s.Messages) > MaxMessages {
		s.Messages = s.Messages[:MaxMessages]
	}
}

// Rank maps a final net worth to the end-of-game standing.
func Rank(netWorth float64) string {
	switch {
	case netWorth < 0:
		return "Bankrupt"
	case netWorth < 50_000:
		return "Survivor"
	case netWorth < 200_000:
		return "Hard Worker"
	case netWorth < 500_000:
		return "Successful Manager"
	case netWorth < 1_000_000:
		return "Wealthy"
	case netWorth < 5_000_000:
		return "Millionaire"
	case netWorth < 20_000_000:
		return "Tycoon"
	default:
		return "Wall St. Legend"
	}
}
