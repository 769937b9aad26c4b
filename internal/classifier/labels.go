package classifier

// Zero-shot classification scores hypothesis sentences rather than bare
// labels. Each hypothesis maps back to the enum value it stands for; the
// wording below is what the NLI models were tuned against and must not
// be rephrased without re-checking score quality.

var categoryHypotheses = []string{
	"This ticket is about a technical issue such as system configuration, security setup, software malfunction, or data protection",
	"This ticket is about a billing, invoice, or payment-related issue",
	"This ticket is a general question or request that is not related to technical problems or billing",
}

var categoryByHypothesis = map[string]Category{
	categoryHypotheses[0]: CategoryTechnical,
	categoryHypotheses[1]: CategoryBilling,
	categoryHypotheses[2]: CategoryGeneral,
}

var priorityHypotheses = []string{
	"The request is not urgent and can be answered later.",
	"The request is important but not urgent.",
	"The request is urgent and needs immediate attention.",
}

var priorityByHypothesis = map[string]Priority{
	priorityHypotheses[0]: PriorityLow,
	priorityHypotheses[1]: PriorityMedium,
	priorityHypotheses[2]: PriorityHigh,
}
