package game

// EducationCosts is the one-time fee charged when a degree is started.
var EducationCosts = map[EducationLevel]float64{
	EducationHighSchool: 500,
	EducationBachelor:   20000,
	EducationMaster:     50000,
	EducationMBA:        80000,
}

// EducationDurations is the study length of each degree in months.
var EducationDurations = map[EducationLevel]int{
	EducationHighSchool: 3,
	EducationBachelor:   6,
	EducationMaster:     4,
	EducationMBA:        5,
}

var Courses = []Course{
	{
		ID:             "c_soft",
		Title:          "Soft Skills Training",
		Cost:           3000,
		SalaryBonus:    0.10,
		Description:    "Communication skills. +10% income.",
		DurationMonths: 2,
	},
	{
		ID:             "c_tech_boot",
		Title:          "IT Bootcamp",
		Cost:           8000,
		SalaryBonus:    0.15,
		Description:    "Tech intensive. +15% income.",
		DurationMonths: 4,
	},
	{
		ID:             "c_manage",
		Title:          "Effective Management",
		Cost:           15000,
		SalaryBonus:    0.20,
		Description:    "Team leadership. +20% income.",
		DurationMonths: 5,
	},
	{
		ID:             "c_invest",
		Title:          "Financial Literacy",
		Cost:           25000,
		SalaryBonus:    0.25,
		Description:    "Capital management. +25% income.",
		DurationMonths: 6,
	},
}

var Jobs = []Job{
	// service
	{ID: "srv_fastfood", Title: "Fast Food Crew", Category: CategoryService, Salary: 1200, ReqEducation: EducationNone, ReqExpYears: 0},
	{ID: "srv_janitor", Title: "Cleaner", Category: CategoryService, Salary: 1600, ReqEducation: EducationNone, ReqExpYears: 0},
	{ID: "srv_cashier", Title: "Cashier", Category: CategoryService, Salary: 2200, ReqEducation: EducationNone, ReqExpYears: 0},
	{ID: "srv_handyman", Title: "Loader", Category: CategoryService, Salary: 3000, ReqEducation: EducationNone, ReqExpYears: 0},

	// business
	{ID: "biz_sec", Title: "Secretary", Category: CategoryBusiness, Salary: 3200, ReqEducation: EducationHighSchool, ReqExpYears: 0},
	{ID: "biz_man", Title: "Manager", Category: CategoryBusiness, Salary: 5000, ReqEducation: EducationBachelor, ReqExpYears: 1},
	{ID: "biz_acc", Title: "Chief Accountant", Category: CategoryBusiness, Salary: 8500, ReqEducation: EducationBachelor, ReqExpYears: 2.5},
	{ID: "biz_head", Title: "Head of Finance", Category: CategoryBusiness, Salary: 15000, ReqEducation: EducationMaster, ReqExpYears: 4},
	{ID: "biz_ceo", Title: "CEO", Category: CategoryBusiness, Salary: 65000, ReqEducation: EducationMBA, ReqExpYears: 6},

	// tech
	{ID: "tech_jun", Title: "Junior Developer", Category: CategoryTech, Salary: 5000, ReqEducation: EducationBachelor, ReqExpYears: 0},
	{ID: "tech_mid", Title: "Middle Developer", Category: CategoryTech, Salary: 9000, ReqEducation: EducationBachelor, ReqExpYears: 1},
	{ID: "tech_sen", Title: "Senior Developer", Category: CategoryTech, Salary: 16000, ReqEducation: EducationBachelor, ReqExpYears: 2.5},
	{ID: "tech_cto", Title: "CTO", Category: CategoryTech, Salary: 45000, ReqEducation: EducationMBA, ReqExpYears: 4},

	// medical
	{ID: "med_ord", Title: "Orderly", Category: CategoryMedical, Salary: 2500, ReqEducation: EducationHighSchool, ReqExpYears: 0},
	{ID: "med_nurse", Title: "Surgical Nurse", Category: CategoryMedical, Salary: 6000, ReqEducation: EducationBachelor, ReqExpYears: 1},
	{ID: "med_anes", Title: "Anesthesiologist", Category: CategoryMedical, Salary: 12000, ReqEducation: EducationMaster, ReqExpYears: 2},
	{ID: "med_asst", Title: "Surgical Assistant", Category: CategoryMedical, Salary: 20000, ReqEducation: EducationMaster, ReqExpYears: 3},
	{ID: "med_surg", Title: "Lead Surgeon", Category: CategoryMedical, Salary: 48000, ReqEducation: EducationMaster, ReqExpYears: 4},
}

// DefaultInstruments returns a fresh copy of the starting market so each
// game owns its own history slices.
func DefaultInstruments() []Instrument {
	seed := []Instrument{
		{Symbol: "TECH", Name: "MacroSoft", Kind: KindStock, Model: ModelTrending, Price: 150, Volatility: 0.15, Trend: 0.005, DividendYield: 0.015},
		{Symbol: "AUTO", Name: "TeslaMotors", Kind: KindStock, Model: ModelTrending, Price: 80, Volatility: 0.25, Trend: 0.002},
		{Symbol: "FOOD", Name: "BurgerKing", Kind: KindStock, Model: ModelTrending, Price: 40, Volatility: 0.08, Trend: 0.001, DividendYield: 0.045},
		{Symbol: "GOLD", Name: "GoldIndex", Kind: KindStock, Model: ModelTrending, Price: 200, Volatility: 0.05, Trend: 0.003},
		{Symbol: "ZETA", Name: "ZetaCoin", Kind: KindCrypto, Model: ModelMeanRevert, Price: 10, Volatility: 0.15, MeanTarget: 10},
		{Symbol: "BTC", Name: "BitCash", Kind: KindCrypto, Model: ModelClassic, Price: 1200, Volatility: 0.50, Trend: 0.005},
		{Symbol: "LITE", Name: "LiteChain", Kind: KindCrypto, Model: ModelClassic, Price: 150, Volatility: 0.60, Trend: 0.003},
		{Symbol: "MOON", Name: "RocketToken", Kind: KindCrypto, Model: ModelPumpDump, Price: 2, Volatility: 1.0},
	}
	for i := range seed {
		seed[i].History = []float64{seed[i].Price}
	}
	return seed
}

func FindJob(id string) (Job, bool) {
	for _, j := range Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

func FindCourse(id string) (Course, bool) {
	for _, c := range Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}
