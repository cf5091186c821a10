package taxonomy

import "github.com/sells-group/evidence-cli/internal/model"

// Default returns the reference six-block taxonomy for tax method-change
// workpapers. Keyword sets were tuned against golden-standard 10-K filings.
func Default() Taxonomy {
	return Taxonomy{Blocks: []Block{
		{
			Name: "Fixed Assets",
			Categories: []Category{
				{Name: "Depreciation/Amortization", Keywords: []string{
					"depreciation", "amortization", "useful life", "useful lives",
					"straight-line", "accumulated depreciation", "depreciation expense",
					"amortization expense", "estimated useful life", "depreciable life",
					"depreciation and amortization expense",
				}},
				{Name: "Intangibles", Keywords: []string{
					"intangible assets", "intangible asset", "goodwill", "patents",
					"trademarks", "customer relationships", "indefinite-lived",
					"definite-lived", "impairment",
				}},
				{Name: "Property, Plant & Equipment", Keywords: []string{
					"property, plant and equipment", "property and equipment",
					"fixed assets", "machinery", "equipment", "construction in progress",
					"leasehold improvements",
				}},
				{Name: "Repair & Maintenance", Keywords: []string{
					"repair", "repairs", "maintenance", "turnaround", "overhaul",
					"major maintenance", "maintenance and repair",
					"repairs and maintenance", "maintenance costs",
				}},
				{Name: "Spare Parts", Keywords: []string{
					"spare parts", "critical spares", "rotables", "rotable parts",
					"catalysts", "materials and supplies", "maintenance inventory",
				}},
				{Name: "Building/Leasehold", Keywords: []string{
					"building", "buildings", "leasehold improvement",
					"tenant improvement", "land and buildings",
					"buildings and improvements",
				}},
				{Name: "M&A/Acquisition", Keywords: []string{
					"acquisition", "acquisitions", "merger", "business combination",
					"purchase price allocation", "acquired", "fair value of",
				}},
				{Name: "Expansion & Construction", Keywords: []string{
					"expansion", "construction", "capital project", "capex",
					"construction-in-progress", "capital expenditure",
					"capital expenditures", "capacity expansion",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionNotes, model.SectionAccountingPolicies, model.SectionMDA,
			},
		},
		{
			Name: "Inventory",
			Categories: []Category{
				{Name: "Inventory", Keywords: []string{
					"inventory", "inventories", "LIFO", "FIFO", "weighted average",
					"lower of cost", "net realizable value", "263A", "UNICAP",
					"raw materials", "work in process", "finished goods",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionNotes, model.SectionAccountingPolicies, model.SectionMDA,
			},
		},
		{
			Name: "R&D",
			Categories: []Category{
				{Name: "Research & Development", Keywords: []string{
					"research and development", "R&D", "development costs",
					"capitalized software", "joint venture", "joint ventures",
					"technological innovation", "equity investment",
					"unconsolidated affiliates",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionNotes, model.SectionMDA,
			},
		},
		{
			Name: "Tax",
			Categories: []Category{
				{Name: "Section 163(j)", Keywords: []string{
					"163(j)", "business interest", "interest limitation",
					"interest expense limitation", "adjusted taxable income",
					"interest expense, net", "capitalized interest",
				}},
				{Name: "Deferred Tax (DTL/DTA)", Keywords: []string{
					"deferred tax", "deferred tax assets", "deferred tax liabilities",
					"valuation allowance", "temporary differences", "ASC 740",
					"income tax", "tax provision",
				}},
				{Name: "Prepaid Expense", Keywords: []string{
					"prepaid", "prepaid expenses", "advance payment",
					"paid in advance", "contract fulfillment", "costs to fulfill",
					"fulfillment costs",
				}},
				{Name: "Deferred Revenue", Keywords: []string{
					"deferred revenue", "unearned revenue", "contract liability",
					"contract liabilities",
				}},
				{Name: "Advanced Payments", Keywords: []string{
					"advance payment", "advanced payments", "customer advances",
					"deposits received", "upfront payment", "customer deposits",
				}},
				{Name: "Revenue Recognition", Keywords: []string{
					"revenue recognition", "ASC 606", "performance obligation",
					"contract asset", "variable consideration",
					"revenues are recognized", "recognize revenue",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionNotes, model.SectionAccountingPolicies, model.SectionMDA,
			},
		},
		{
			Name: "Financial Statements",
			Categories: []Category{
				{Name: "Income Statement", Keywords: []string{
					"consolidated statements of operations", "statement of operations",
					"total revenue", "net income", "operating income", "gross profit",
				}},
				{Name: "Balance Sheet", Keywords: []string{
					"consolidated balance sheets", "consolidated balance sheet",
					"total assets", "total liabilities", "stockholders' equity",
					"shareholders' equity",
				}},
				{Name: "Cash Flow", Keywords: []string{
					"consolidated statements of cash flows", "statement of cash flows",
					"operating activities", "investing activities",
					"financing activities", "cash provided by", "cash used in",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionFinancialStatement, model.SectionNotes,
			},
		},
		{
			Name: "Business Overview",
			Categories: []Category{
				{Name: "Business Description", Keywords: []string{
					"we own and operate", "we are a leading", "leading provider",
					"we provide", "our business", "our operations", "we operate",
					"principal business", "business overview",
				}},
			},
			PrioritySections: []model.SectionType{
				model.SectionMDA, model.SectionBusiness, model.SectionNotes,
			},
		},
	}}
}
