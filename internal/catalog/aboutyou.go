package catalog

import "partyline/internal/model"

// AboutYou returns the default party questionnaire. Content here is fixed
// configuration; the ids are storage keys and must stay stable across
// deployments.
func AboutYou() *Catalog {
	c, err := New(aboutYouBatches())
	if err != nil {
		// Content is static; a duplicate id is a programming error.
		panic(err)
	}
	return c
}

func aboutYouBatches() []model.Batch {
	return []model.Batch{
		{
			ID:    "basics",
			Title: "The Basics",
			Questions: []model.Question{
				{
					ID:       "nickname",
					Kind:     model.KindShortText,
					Prompt:   "What do your friends call you?",
					Required: true,
				},
				{
					ID:       "birth_city",
					Kind:     model.KindShortText,
					Prompt:   "Which city were you born in?",
					Required: true,
					Location: true,
				},
				{
					ID:             "birth_month",
					Kind:           model.KindDropdown,
					Prompt:         "Which month is your birthday?",
					Required:       true,
					OrderedOptions: true,
					Options: []model.Option{
						{ID: "jan", Label: "January"},
						{ID: "feb", Label: "February"},
						{ID: "mar", Label: "March"},
						{ID: "apr", Label: "April"},
						{ID: "may", Label: "May"},
						{ID: "jun", Label: "June"},
						{ID: "jul", Label: "July"},
						{ID: "aug", Label: "August"},
						{ID: "sep", Label: "September"},
						{ID: "oct", Label: "October"},
						{ID: "nov", Label: "November"},
						{ID: "dec", Label: "December"},
						{ID: "secret", Label: "Not telling!"},
					},
				},
				{
					ID:       "party_trick",
					Kind:     model.KindShortText,
					Prompt:   "What's your party trick?",
					Required: false,
				},
			},
		},
		{
			ID:    "tastes",
			Title: "Matters of Taste",
			Questions: []model.Question{
				{
					ID:       "pulao_biryani",
					Kind:     model.KindEitherOr,
					Prompt:   "Pulao or Biryani?",
					Required: true,
					Options: []model.Option{
						{ID: "a", Label: "Pulao"},
						{ID: "b", Label: "Biryani"},
					},
					Flags: model.EitherOrFlags{AllowBoth: true, AllowDontKnow: true},
				},
				{
					ID:       "chai_coffee",
					Kind:     model.KindEitherOr,
					Prompt:   "Chai or Coffee?",
					Required: true,
					Options: []model.Option{
						{ID: "a", Label: "Chai"},
						{ID: "b", Label: "Coffee"},
					},
					Flags: model.EitherOrFlags{AllowBoth: true, AllowNeither: true},
				},
				{
					ID:       "sweet_savory",
					Kind:     model.KindEitherOr,
					Prompt:   "Sweet tooth or savory cravings?",
					Required: false,
					Options: []model.Option{
						{ID: "a", Label: "Sweet"},
						{ID: "b", Label: "Savory"},
					},
					Flags: model.EitherOrFlags{AllowBoth: true},
				},
				{
					ID:       "dance_move",
					Kind:     model.KindSingleChoice,
					Prompt:   "Pick your signature dance move",
					Required: true,
					Options: []model.Option{
						{ID: "bhangra", Label: "Bhangra shoulders"},
						{ID: "twist", Label: "The twist"},
						{ID: "robot", Label: "The robot"},
						{ID: "twostep", Label: "Safe two-step"},
						{ID: "other", Label: "Something else", WriteIn: true},
					},
				},
			},
		},
		{
			ID:    "wanderlust",
			Title: "Wanderlust",
			Questions: []model.Question{
				{
					ID:       "travel_city",
					Kind:     model.KindShortText,
					Prompt:   "Your favorite city you've ever traveled to?",
					Required: true,
					Location: true,
				},
				{
					ID:       "travel_style",
					Kind:     model.KindSingleChoice,
					Prompt:   "How do you travel?",
					Required: false,
					Options: []model.Option{
						{ID: "planner", Label: "Spreadsheet itinerary"},
						{ID: "drifter", Label: "Book nothing, wing it"},
						{ID: "foodie", Label: "Follow the food"},
						{ID: "other", Label: "My own way", WriteIn: true},
					},
				},
				{
					ID:       "bucket_list",
					Kind:     model.KindShortText,
					Prompt:   "One place still on your bucket list",
					Required: false,
				},
			},
		},
		{
			ID:    "show_and_tell",
			Title: "Show and Tell",
			Questions: []model.Question{
				{
					ID:       "baby_photo",
					Kind:     model.KindPhotoUpload,
					Prompt:   "Upload a baby photo of yourself, we'll guess who's who!",
					Required: true,
				},
				{
					ID:       "anthem",
					Kind:     model.KindShortText,
					Prompt:   "What song gets you on the dance floor, no exceptions?",
					Required: false,
				},
			},
		},
	}
}
