package catalog

// Default returns the built-in indicator catalog.
// Weights and terms mirror the original heuristic tables; both can be
// replaced wholesale via LoadFile without touching the scorer.
func Default() *Catalog {
	c, err := New(DefaultCategories())
	if err != nil {
		// The built-in table is static data; a compile failure here is a
		// programming error, not a runtime condition.
		panic("catalog: invalid built-in categories: " + err.Error())
	}
	return c
}

// DefaultCategories returns the built-in category table
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          "fear_mongering",
			Name:        "Fear Mongering",
			Description: "Language designed to provoke fear or alarm rather than inform",
			Weight:      3,
			Keywords: []string{
				"terrifying", "horrifying", "nightmare", "catastrophe", "catastrophic",
				"deadly threat", "epidemic", "crisis", "collapse", "disaster",
				"apocalypse", "doomed", "dangerous truth",
			},
			Patterns: []string{
				`they don'?t want you to know`,
				`before it'?s too late`,
			},
		},
		{
			ID:          "emotional_manipulation",
			Name:        "Emotional Manipulation",
			Description: "Emotionally charged wording substituting for argument",
			Weight:      2,
			Keywords: []string{
				"shocking", "outrageous", "unbelievable", "heartbreaking",
				"disgusting", "infuriating", "devastating", "jaw-dropping",
				"mind-blowing", "appalling",
			},
		},
		{
			ID:          "false_urgency",
			Name:        "False Urgency",
			Description: "Artificial time pressure discouraging reflection",
			Weight:      2.5,
			Keywords: []string{
				"act now", "breaking", "urgent", "immediately", "right now",
				"last chance", "don't wait", "time is running out", "hurry",
			},
		},
		{
			ID:          "loaded_language",
			Name:        "Loaded Language",
			Description: "Words carrying strong connotations presented as neutral description",
			Weight:      2,
			Keywords: []string{
				"regime", "thugs", "radical", "extremist", "puppet",
				"so-called", "elites", "mainstream media", "propaganda",
				"brainwashed", "sheep", "shill",
			},
		},
		{
			ID:          "absolutism",
			Name:        "Absolutism",
			Description: "Sweeping absolute claims that leave no room for nuance",
			Weight:      1.5,
			Keywords: []string{
				"always", "never", "everyone knows", "nobody", "all of them",
				"every single", "completely", "totally", "undeniable",
				"irrefutable", "proven fact",
			},
		},
		{
			ID:          "conspiracy_rhetoric",
			Name:        "Conspiracy Rhetoric",
			Description: "Framing that implies hidden coordinated malice without evidence",
			Weight:      3,
			Keywords: []string{
				"cover-up", "coverup", "hidden agenda", "secret plan", "wake up",
				"do your own research", "the truth is out there", "deep state",
				"what they're hiding", "silenced",
			},
			Patterns: []string{
				`the real reason (?:why|behind)`,
				`what the media won'?t tell you`,
			},
		},
		{
			ID:          "us_vs_them",
			Name:        "Us vs. Them",
			Description: "Divisive in-group/out-group framing",
			Weight:      2,
			Keywords: []string{
				"real americans", "true patriots", "the enemy", "traitors",
				"people like us", "they hate us", "our way of life",
				"take back our", "them versus us",
			},
		},
		{
			ID:          "source_vagueness",
			Name:        "Source Vagueness",
			Description: "Appeals to unnamed or unverifiable sources",
			Weight:      1.5,
			Keywords: []string{
				"sources say", "experts say", "studies show", "many people are saying",
				"it is said", "reportedly", "insiders claim", "some say",
			},
		},
	}
}

// DefaultClickbaitPatterns returns the known clickbait phrase patterns used
// by the independent clickbait heuristic (not a weighted category).
func DefaultClickbaitPatterns() []string {
	return []string{
		`you won'?t believe`,
		`number \d+ will`,
		`what happens? next`,
		`doctors hate`,
		`this one (?:simple |weird )?trick`,
		`the answer will surprise you`,
		`\d+ (?:reasons|things|facts|ways) (?:why |that )?`,
		`gone wrong`,
		`will blow your mind`,
	}
}
