package scoring

// Canned interpretation texts and recommendation lists. All tables are
// package-level read-only data; nothing mutates them after init.

// activityRecommendations lists four recommended activity descriptions for
// each primary RIASEC category.
var activityRecommendations = map[Category][]string{
	Realistic: {
		"Building, repairing, assembling",
		"Operating tools or equipment",
		"Hands-on experiments and practical work",
		"Outdoor or physical tasks",
	},
	Investigative: {
		"Research, analysis, and experimentation",
		"Logical problem-solving and diagnostics",
		"Studying data, formulas, or systems",
		"Reading and exploring new concepts",
	},
	Artistic: {
		"Designing, drawing, writing, creating",
		"Visual storytelling, performing, composing",
		"Brainstorming and idea generation",
		"Crafting original or aesthetic solutions",
	},
	Social: {
		"Teaching, mentoring, counseling",
		"Group activities and teamwork",
		"Organizing events and coordinating people",
		"Providing guidance and support",
	},
	Enterprising: {
		"Leading teams and projects",
		"Public speaking or pitching ideas",
		"Planning, organizing, and negotiating",
		"Managing people and resources",
	},
	Conventional: {
		"Data entry, documentation, record-keeping",
		"Managing schedules, files, and processes",
		"Maintaining accuracy and quality control",
		"Organizing information and workflows",
	},
}

// wellbeingFeedback maps each band to its interpretation text.
var wellbeingFeedback = map[string]string{
	BandVeryLow: "This questionnaire measures mental wellbeing, which includes both positive feelings like happiness and positive functioning like problem solving and optimism. This score is in the very low range, suggesting there may be significant difficulties in this area compared to peers. Recovery is likely to benefit from help from a doctor or health professional and the individual may already be in contact with health services. There are also evidence-based steps everyone can take to support mental health for example:\n• Connect with others – talk to sympathetic people about how you are feeling now; \n• Be active – exercise changes our emotional states; \n• Find something that calms you or makes you feel happy and do it everyday; \n• Do something that helps someone else – this could include volunteering; \n• Keep learning - remembering that we can develop and grow changes our outlook on life;",
	BandBelowAverage: "This questionnaire measures mental wellbeing, which includes both positive feelings like happiness and positive functioning like problems solving and optimism. This score is in the low range, suggesting that the individual could feel significantly better if they took some action to improve mental wellbeing. There are evidence-based steps we can all take to support mental health for example: \n• Connect with others – talk to sympathetic people about how you are feeling now; \n• Find something that calms you or makes you feel happy and do it everyday; \n• Do something that helps someone else – this could include volunteering; \n• Be active – exercise changes our emotional states; \n• Keep learning - remembering that we can develop and grow changes our outlook on life;",
	BandAverage: "This questionnaire measures mental wellbeing, which includes both positive feelings like happiness and positive functioning like problem solving and optimism. This score is in the normal range, suggesting that this individual is doing OK compared to peers. However, someone with a score in this range could gain much in terms of resilience and quality of life by taking action to improve mental wellbeing. There are evidence-based steps we can all take to support mental health for example: \n• Do something that calms you or makes you feel happy everyday; \n• Do something that helps someone else – this could include volunteering; \n• Be active – exercise changes our emotional states; \n• Keep learning - remembering that we can develop and grow changes our outlook on life; \n• Connect with others – talk to sympathetic people about how you are feeling now;",
	BandAboveAverage: "This questionnaire measures mental wellbeing, which includes both positive feelings like happiness and positive functioning like problem solving and optimism. This score is in the above-average range, suggesting a high level of mental wellbeing compared to peers. To help maintain this level of mental wellbeing in the face of life’s ups and downs there are evidence-based steps we can all take for example: \n• Do something that calms you or makes you feel happy everyday; \n• Keep learning - remembering that we can develop and grow changes our outlook on life; \n• Be active – exercise changes our emotional states; \n• Do something that helps someone else – this could include volunteering; \n• Connect with others – talk to sympathetic people about how you are feeling now;",
}

// eiFactorFeedback maps factor name and level to the canned interpretation.
var eiFactorFeedback = map[string]map[string]string{
	FactorWellBeing: {
		LevelLow:     "Tends to have a gloomy outlook; may struggle with self-confidence or feel dissatisfied with current life circumstances. Focus on identifying small positive moments daily and practice gratitude.",
		LevelAverage: "Generally satisfied and realistic; possesses a balanced sense of self-worth with occasional bouts of insecurity. You have a solid foundation—consider activities that boost confidence.",
		LevelHigh:    "Optimistic, happy, and fulfilled; has high self-esteem and a very positive outlook on the future. Use your positive energy to inspire others and maintain this momentum.",
	},
	FactorSelfControl: {
		LevelLow:     "Likely impulsive or easily stressed; finds it difficult to stay calm under pressure or manage intense moods. Practice mindfulness and breathing techniques to regulate emotions.",
		LevelAverage: "Usually capable of staying calm; can regulate impulses in daily life but may feel overwhelmed by extreme stress. Develop coping strategies for high-pressure situations.",
		LevelHigh:    "Excellent impulse control; highly resilient to stress and capable of regulating moods effectively. Your emotional regulation is a strength—help others develop these skills.",
	},
	FactorEmotionality: {
		LevelLow:     "May find it hard to express feelings or \"read\" others; potentially feels disconnected from own emotions. Try journaling or therapy to better understand your emotions.",
		LevelAverage: "Moderately in touch with feelings; can express emotions to friends but may occasionally misread subtle social cues. Practice active listening and empathy in conversations.",
		LevelHigh:    "Highly empathetic and emotionally articulate; finds it easy to share feelings and understand others' perspectives. Your emotional awareness is valuable in building strong relationships.",
	},
	FactorSociability: {
		LevelLow:     "Often feels shy or reserved; may struggle to influence others or feel uncomfortable in social leadership roles. Start with small social interactions and build confidence gradually.",
		LevelAverage: "Comfortably social in most settings; can stand up for self when necessary but may prefer to avoid social confrontation. Practice assertiveness in low-stakes situations.",
		LevelHigh:    "Socially confident and influential; a strong negotiator who feels at ease in various social environments. Consider taking on leadership roles to leverage your strengths.",
	},
}

// eiGlobalFeedback maps the global level to its interpretation.
var eiGlobalFeedback = map[string]string{
	LevelLow:     "Indicates a significant need for developing emotional awareness and coping strategies for social demands.",
	LevelAverage: "Possesses the emotional tools needed for functional success in school and social life.",
	LevelHigh:    "Indicates a high level of \"Emotional Intelligence\"; very effective at navigating the emotional landscape of life.",
}
