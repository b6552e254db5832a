package webui

type option struct {
	Label string
	Value string
}

var ageRanges = []option{
	{"18-22", "18-22"},
	{"23-29", "23-29"},
	{"30-39", "30-39"},
	{"40+", "40+"},
}

var industries = []option{
	{"Financial Services", "Finance and Insurance"},
	{"Tech & Digital Services", "Information"},
	{"Professional Services", "Professional, Scientific, and Technical Services"},
	{"Healthcare", "Health Care and Social Assistance"},
	{"Education", "Educational Services"},
	{"Manufacturing", "Manufacturing"},
	{"Energy & Utilities", "Utilities"},
	{"Transportation & Logistics", "Transportation and Warehousing"},
	{"Retail & Consumer Goods", "Retail Trade"},
	{"Government & Public Sector", "Public Administration"},
	{"Real Estate & Construction", "Construction"},
	{"Hospitality & Food Services", "Accommodation and Food Services"},
	{"Other", "Other"},
}

var companySizes = []option{
	{"Small (1–1,000 employees)", "Small"},
	{"Medium (1,001–10,000 employees)", "Medium"},
	{"Large (10,000+ employees)", "Large"},
}

var regions = []option{
	{"United States", "United States"},
}
