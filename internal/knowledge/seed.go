package knowledge

func seedKPIs() []KPIDefinition {
	return []KPIDefinition{
		{
			ID:              "total_calls",
			Name:            "Total Calls",
			Definition:      "The total number of inbound and outbound calls handled by the call center in a given time period",
			Formula:         "Sum of all completed calls (inbound + outbound)",
			Category:        "Volume Metrics",
			RelevantRoles:   []Role{RoleEnterpriseLeader, RoleSupervisor, RoleAgent},
			BusinessContext: "Indicates call center capacity utilization and demand levels. High volumes may require staffing adjustments.",
			Benchmarks: Benchmarks{
				Excellent:        "> 95% of capacity",
				Good:             "80-95% of capacity",
				NeedsImprovement: "< 80% of capacity",
			},
		},
		{
			ID:              "answer_rate",
			Name:            "Answer Rate",
			Definition:      "Percentage of incoming calls that are answered by agents within the defined service level",
			Formula:         "(Answered Calls / Total Incoming Calls) × 100",
			Category:        "Service Quality",
			RelevantRoles:   []Role{RoleEnterpriseLeader, RoleSupervisor},
			BusinessContext: "Critical for customer satisfaction. Low answer rates indicate understaffing or inefficient call routing.",
			Benchmarks: Benchmarks{
				Excellent:        "> 95%",
				Good:             "90-95%",
				NeedsImprovement: "< 90%",
			},
		},
		{
			ID:              "avg_handle_time",
			Name:            "Average Handle Time (AHT)",
			Definition:      "Average time an agent spends handling a call, including talk time and after-call work",
			Formula:         "(Total Talk Time + Total Hold Time + Total Wrap Time) / Total Calls Handled",
			Category:        "Efficiency Metrics",
			RelevantRoles:   []Role{RoleSupervisor, RoleAgent},
			BusinessContext: "Balances efficiency with quality. Too low may indicate rushed service; too high suggests training needs.",
			Benchmarks: Benchmarks{
				Excellent:        "< 4 minutes",
				Good:             "4-6 minutes",
				NeedsImprovement: "> 6 minutes",
			},
		},
		{
			ID:              "customer_satisfaction",
			Name:            "Customer Satisfaction (CSAT)",
			Definition:      "Average rating customers give based on their service experience",
			Formula:         "Sum of all satisfaction scores / Total number of surveys",
			Category:        "Quality Metrics",
			RelevantRoles:   []Role{RoleEnterpriseLeader, RoleSupervisor, RoleAgent},
			BusinessContext: "Direct measure of service quality and customer experience. Impacts retention and brand reputation.",
			Benchmarks: Benchmarks{
				Excellent:        "> 4.5/5.0",
				Good:             "4.0-4.5/5.0",
				NeedsImprovement: "< 4.0/5.0",
			},
		},
		{
			ID:              "first_call_resolution",
			Name:            "First Call Resolution (FCR)",
			Definition:      "Percentage of calls resolved on the first contact without need for follow-up",
			Formula:         "(Calls Resolved on First Contact / Total Calls) × 100",
			Category:        "Quality Metrics",
			RelevantRoles:   []Role{RoleSupervisor, RoleAgent},
			BusinessContext: "Indicates agent knowledge and process efficiency. High FCR reduces costs and improves satisfaction.",
			Benchmarks: Benchmarks{
				Excellent:        "> 85%",
				Good:             "75-85%",
				NeedsImprovement: "< 75%",
			},
		},
		{
			ID:              "agent_utilization",
			Name:            "Agent Utilization",
			Definition:      "Percentage of time agents spend on productive call-related activities",
			Formula:         "(Total Talk Time + Total Wrap Time) / Total Logged Time × 100",
			Category:        "Efficiency Metrics",
			RelevantRoles:   []Role{RoleEnterpriseLeader, RoleSupervisor},
			BusinessContext: "Measures workforce efficiency. Too high indicates burnout risk; too low suggests overstaffing.",
			Benchmarks: Benchmarks{
				Excellent:        "75-85%",
				Good:             "65-75%",
				NeedsImprovement: "< 65% or > 85%",
			},
		},
		{
			ID:              "cost_per_call",
			Name:            "Cost Per Call",
			Definition:      "Total operational cost divided by number of calls handled",
			Formula:         "(Agent Costs + Technology Costs + Overhead) / Total Calls",
			Category:        "Financial Metrics",
			RelevantRoles:   []Role{RoleEnterpriseLeader},
			BusinessContext: "Key profitability metric. Helps optimize staffing and technology investments.",
			Benchmarks: Benchmarks{
				Excellent:        "< $10",
				Good:             "$10-15",
				NeedsImprovement: "> $15",
			},
		},
		{
			ID:              "revenue_impact",
			Name:            "Revenue Impact",
			Definition:      "Total revenue generated through call center activities including sales and retention",
			Formula:         "Direct Sales + Upsells + Retention Value - Lost Revenue",
			Category:        "Financial Metrics",
			RelevantRoles:   []Role{RoleEnterpriseLeader},
			BusinessContext: "Demonstrates call center value as profit center, not just cost center.",
			Benchmarks: Benchmarks{
				Excellent:        "> 300% of operating costs",
				Good:             "200-300% of operating costs",
				NeedsImprovement: "< 200% of operating costs",
			},
		},
	}
}
