package store

import "time"

func seedSnapshot() Snapshot {
	return Snapshot{
		TotalCalls:           15420,
		AnsweredCalls:        14890,
		AverageHandleTime:    285,
		CustomerSatisfaction: 4.2,
		FirstCallResolution:  87.5,
		AgentUtilization:     78.3,
		Campaigns: []CampaignRecord{
			{Name: "Holiday Sale", Leads: 1250, Conversions: 312, Revenue: 78500},
			{Name: "Product Launch", Leads: 890, Conversions: 245, Revenue: 125000},
			{Name: "Retention Campaign", Leads: 2100, Conversions: 567, Revenue: 89700},
			{Name: "Upsell Initiative", Leads: 760, Conversions: 198, Revenue: 45600},
		},
		Agents: []AgentRecord{
			{Name: "Sarah Johnson", CallsHandled: 142, AvgHandleTime: 245, Satisfaction: 4.8},
			{Name: "Mike Chen", CallsHandled: 138, AvgHandleTime: 267, Satisfaction: 4.6},
			{Name: "Emily Davis", CallsHandled: 156, AvgHandleTime: 298, Satisfaction: 4.3},
			{Name: "Alex Rodriguez", CallsHandled: 129, AvgHandleTime: 312, Satisfaction: 4.1},
			{Name: "Lisa Wang", CallsHandled: 147, AvgHandleTime: 234, Satisfaction: 4.7},
		},
	}
}

func seedPersonas() []Persona {
	return []Persona{
		{
			ID:          "tech_savvy",
			Name:        "Tech-Savvy Professional",
			Description: "Digital-first customer who prefers self-service and online channels",
			Behaviors:   []string{"Uses mobile app frequently", "Prefers digital communication", "Quick decision maker"},
			Preferences: []string{"Online chat", "Email notifications", "Mobile-first experience"},
			PainPoints:  []string{"Long wait times", "Repetitive information requests", "Inconsistent experiences"},
		},
		{
			ID:          "traditional",
			Name:        "Traditional Customer",
			Description: "Prefers human interaction and established processes",
			Behaviors:   []string{"Calls for most inquiries", "Values personal relationships", "Careful decision maker"},
			Preferences: []string{"Phone calls", "In-person service", "Paper statements"},
			PainPoints:  []string{"Complex digital processes", "Automated systems", "Lack of personal touch"},
		},
		{
			ID:          "price_conscious",
			Name:        "Price-Conscious Buyer",
			Description: "Highly sensitive to costs and seeks value optimization",
			Behaviors:   []string{"Compares prices extensively", "Uses promotions", "Negotiates deals"},
			Preferences: []string{"Cost transparency", "Discount notifications", "Value propositions"},
			PainPoints:  []string{"Hidden fees", "Expensive add-ons", "Complex pricing"},
		},
	}
}

func seedMembers() []MemberProfile {
	personas := seedPersonas()
	ts := func(v string) time.Time {
		t, _ := time.Parse("2006-01-02T15:04:05", v)
		return t
	}
	return []MemberProfile{
		{
			MemberID: "M001",
			Name:     "Sarah Johnson",
			Email:    "sarah.johnson@email.com",
			Phone:    "(555) 123-4567",
			Persona:  &personas[0],
			Demographics: Demographics{
				Age:           34,
				Location:      "San Francisco, CA",
				Income:        "$85,000-$100,000",
				Education:     "Bachelor's Degree",
				Occupation:    "Software Engineer",
				FamilyStatus:  "Single",
				CustomerSince: "2020-03-15",
				Tier:          TierGold,
			},
			Journey: []JourneyEvent{
				{
					ID:         "j1",
					Timestamp:  ts("2024-01-15T09:00:00"),
					Touchpoint: "Website Visit",
					Activity:   "Product Research",
					Channel:    ChannelWeb,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"pagesViewed": 5, "timeSpent": "15min"},
				},
				{
					ID:         "j2",
					Timestamp:  ts("2024-01-15T14:30:00"),
					Touchpoint: "Mobile App",
					Activity:   "Account Update",
					Channel:    ChannelMobile,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"feature": "profile_update"},
				},
				{
					ID:         "j3",
					Timestamp:  ts("2024-01-20T11:15:00"),
					Touchpoint: "Customer Support",
					Activity:   "Billing Inquiry",
					Channel:    ChannelChat,
					Outcome:    OutcomeEscalated,
					Details:    map[string]any{"issue": "billing_discrepancy", "agent": "Mike Chen"},
				},
				{
					ID:         "j4",
					Timestamp:  ts("2024-01-22T16:45:00"),
					Touchpoint: "Call Center",
					Activity:   "Issue Resolution",
					Channel:    ChannelCallCenter,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"resolution": "billing_corrected", "satisfaction": 4.5},
				},
			},
			Context: MemberContext{
				LastInteraction: ts("2024-01-22T16:45:00"),
				ActiveIssues:    []string{},
				Sentiment:       SentimentPositive,
				RiskScore:       0.2,
				LifetimeValue:   12500,
			},
		},
		{
			MemberID: "M002",
			Name:     "Robert Smith",
			Email:    "robert.smith@email.com",
			Phone:    "(555) 987-6543",
			Persona:  &personas[1],
			Demographics: Demographics{
				Age:           58,
				Location:      "Dallas, TX",
				Income:        "$60,000-$75,000",
				Education:     "High School",
				Occupation:    "Retail Manager",
				FamilyStatus:  "Married with children",
				CustomerSince: "2015-08-20",
				Tier:          TierPlatinum,
			},
			Journey: []JourneyEvent{
				{
					ID:         "j5",
					Timestamp:  ts("2024-01-10T10:00:00"),
					Touchpoint: "Call Center",
					Activity:   "Service Inquiry",
					Channel:    ChannelCallCenter,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"duration": "12min", "agent": "Lisa Wong"},
				},
				{
					ID:         "j6",
					Timestamp:  ts("2024-01-18T15:20:00"),
					Touchpoint: "Branch Visit",
					Activity:   "Document Submission",
					Channel:    ChannelStore,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"documents": []string{"insurance_claim"}, "staff": "John Davis"},
				},
				{
					ID:         "j7",
					Timestamp:  ts("2024-01-25T09:30:00"),
					Touchpoint: "Call Center",
					Activity:   "Follow-up Call",
					Channel:    ChannelCallCenter,
					Outcome:    OutcomeSuccess,
					Details:    map[string]any{"purpose": "claim_status", "satisfaction": 5.0},
				},
			},
			Context: MemberContext{
				LastInteraction: ts("2024-01-25T09:30:00"),
				ActiveIssues:    []string{"insurance_claim_pending"},
				Sentiment:       SentimentNeutral,
				RiskScore:       0.3,
				LifetimeValue:   45000,
			},
		},
	}
}
