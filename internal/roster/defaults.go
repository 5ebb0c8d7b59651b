package roster

// DefaultStorageKey names the persisted slot holding the roster
const DefaultStorageKey = "smart_onboard_v2_persistent"

// DefaultEmployees returns a fresh copy of the two-record seed dataset
func DefaultEmployees() []Employee {
	return []Employee{
		{
			FullName:                 "陳小明",
			Email:                    "ming@company.com",
			Phone:                    "0912-345-678",
			Birthday:                 "1992-05-12",
			Gender:                   GenderMale,
			NationalID:               "A123456789",
			Address:                  "台北市信義區忠孝東路",
			EmergencyContactName:     "陳大明",
			EmergencyContactRelation: "父",
			EmergencyContactPhone:    "0933-222-111",
			Department:               "Engineering",
			Position:                 "Frontend Engineer",
			StartDate:                "2023-10-01",
			TotalExperienceYears:     5,
			Education:                "National Taiwan University",
			Major:                    "Computer Science",
			Languages:                []string{"Chinese", "English"},
			TopSkills:                []string{"React", "TypeScript"},
			BankCode:                 "822",
			BankAccount:              "123456789012",
			MBTI:                     "INTJ",
			WorkStyle:                WorkStyleHybrid,
			Interests:                "Photography",
			Expectations:             "引領技術團隊邁向現代化架構。",
			Status:                   StatusActive,
			Notes:                    "技術領袖潛力股，具備極強的架構思維。",
		},
		{
			FullName:                 "林美玲",
			Email:                    "meiling@company.com",
			Phone:                    "0922-111-222",
			Birthday:                 "1995-08-20",
			Gender:                   GenderFemale,
			NationalID:               "B222333444",
			Address:                  "新北市板橋區文化路",
			EmergencyContactName:     "林媽媽",
			EmergencyContactRelation: "母",
			EmergencyContactPhone:    "0911-000-999",
			Department:               "Marketing",
			Position:                 "Content Strategist",
			StartDate:                "2023-11-15",
			TotalExperienceYears:     3,
			Education:                "Chengchi University",
			Major:                    "Journalism",
			Languages:                []string{"Chinese", "English", "Japanese"},
			TopSkills:                []string{"SEO", "Copywriting"},
			BankCode:                 "007",
			BankAccount:              "987654321098",
			MBTI:                     "ENFP",
			WorkStyle:                WorkStyleRemote,
			Interests:                "Cooking",
			Expectations:             "打造具備國際視野的品牌敘事。",
			Status:                   StatusActive,
			Notes:                    "具備極高的團隊感染力，適合主導跨部門專案。",
		},
	}
}
