package agent

import (
	"context"
	"fmt"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			The user is weighing a decision: pay cash for an asset (a house, a car) and invest
			the freed-up monthly payment, or finance it and invest the lump sum instead.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The Analyst runs the actual numbers: payment schedules, historical replays, risk.
			Always prefer the Analyst's figures over your own arithmetic. The Researcher can
			look up current rates and market context.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. Be honest about sequence-of-returns risk: an average-case
			win can still have been a disaster in specific starting years.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounded by search, for current loan rates
// and market context the engine knows nothing about.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher,
		well aware of current mortgage and loan rates, index funds, and market news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in consumer finance and markets. You can search and find
			anything related to loan rates, mortgage products, index funds and market
			conditions. You leverage Google Search to ground your assertions in solid truth.
				`}}},
		},
	}
}

// NewAnalyst returns the expert wired to the decision engine: it can amortize
// a loan, replay one historical window, and scan every starting month of the
// return series stored in returnsFile.
func NewAnalyst(returnsFile string) *Expert {

	lib := []Function{amortizeTool(), compareTool(returnsFile), scanTool(returnsFile)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He runs the decision engine: exact payment
		schedules, replays of the pay-cash versus finance decision over historical
		S&P 500 windows, and the risk taken along the way.
		Ask the Analyst whenever the user needs actual figures.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the pay-cash-or-finance decision engine.
				You know how to use the Tools to compute exact figures; never do the
				arithmetic yourself when a tool can.

				Use the available tools to:
				  - amortize a loan into its payment schedule
				  - compare the strategies over one historical window
				  - scan every historical starting month for the win rate and the worst cases
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// loanSchema is the common parameter schema of every engine tool.
func loanSchema(extra map[string]*genai.Schema) *genai.Schema {
	properties := map[string]*genai.Schema{
		"price": {
			Type:        genai.TypeNumber,
			Description: "The asset price: the amount to pay cash or to borrow. Defaults to 500000.",
		},
		"rate": {
			Type:        genai.TypeNumber,
			Description: "The annual loan rate in percent, e.g. 7 for 7%. Defaults to 7.",
		},
		"months": {
			Type:        genai.TypeInteger,
			Description: "The loan term in months. Defaults to 360.",
		},
	}
	for name, s := range extra {
		properties[name] = s
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: properties}
}

func amortizeTool() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Amortize",
			Description: `Amortize computes the fixed monthly payment of a loan, its total
			interest over the term, and the month-by-month split between interest and principal.`,
			Parameters: loanSchema(nil),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown payment schedule.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			terms, err := parseTerms(args)
			if err != nil {
				return toolError(id, "Amortize", err)
			}
			sched, err := payoff.Amortize(terms)
			if err != nil {
				return toolError(id, "Amortize", err)
			}
			return toolOutput(id, "Amortize", renderer.AmortizationMarkdown(sched, 12))
		},
	}
}

func compareTool(returnsFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Compare",
			Description: `Compare replays paying cash (investing the freed-up payments) against
			financing (investing the lump sum) over one historical window of S&P 500 returns,
			and reports final positions and the risk taken along the way.`,
			Parameters: loanSchema(map[string]*genai.Schema{
				"from": {
					Type:        genai.TypeString,
					Description: "The starting month of the window, YYYY-MM, e.g. 1990-01. Defaults to the first month of the series.",
				},
			}),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown comparison report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			terms, err := parseTerms(args)
			if err != nil {
				return toolError(id, "Compare", err)
			}
			series, err := payoff.LoadReturns(returnsFile)
			if err != nil {
				return toolError(id, "Compare", err)
			}
			start := series.First()
			if s, ok := args["from"].(string); ok && s != "" {
				if start, err = payoff.ParseMonth(s); err != nil {
					return toolError(id, "Compare", err)
				}
			}
			sched, err := payoff.Amortize(terms)
			if err != nil {
				return toolError(id, "Compare", err)
			}
			window, err := series.WindowAt(start, terms.TermMonths)
			if err != nil {
				return toolError(id, "Compare", err)
			}
			trajectories := make(map[payoff.Strategy]payoff.Trajectory)
			for _, strategy := range payoff.Competitors {
				traj, err := payoff.Simulate(strategy, sched, window, start)
				if err != nil {
					return toolError(id, "Compare", err)
				}
				trajectories[strategy] = traj
			}
			risk, err := payoff.AnalyzeRisk(trajectories[payoff.FinanceInvestLump], sched)
			if err != nil {
				return toolError(id, "Compare", err)
			}
			return toolOutput(id, "Compare", renderer.CompareMarkdown(&renderer.Comparison{
				Schedule:     sched,
				Start:        start,
				Trajectories: trajectories,
				Risk:         risk,
			}))
		},
	}
}

func scanTool(returnsFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Scan",
			Description: `Scan replays the pay-cash-or-finance decision at every historical
			starting month that leaves a full term of data: win rates, the spread of
			outcomes, and the windows where financing was dangerous.`,
			Parameters: loanSchema(nil),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown scan report with win counts and the outcome distribution.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			terms, err := parseTerms(args)
			if err != nil {
				return toolError(id, "Scan", err)
			}
			series, err := payoff.LoadReturns(returnsFile)
			if err != nil {
				return toolError(id, "Scan", err)
			}
			result, err := payoff.ScanHistory(terms, series, payoff.ScanOptions{})
			if err != nil {
				return toolError(id, "Scan", err)
			}
			return toolOutput(id, "Scan", renderer.ScanMarkdown(result))
		},
	}
}

// parseTerms reads the common loan arguments, falling back to the defaults
// the tool declarations advertise. genai delivers JSON numbers as float64.
func parseTerms(args map[string]any) (payoff.LoanTerms, error) {
	terms := payoff.LoanTerms{Principal: 500000, AnnualRate: 0.07, TermMonths: 360}
	if v, ok := args["price"]; ok {
		f, ok := v.(float64)
		if !ok {
			return terms, fmt.Errorf("argument 'price' is not a number but %T", v)
		}
		terms.Principal = f
	}
	if v, ok := args["rate"]; ok {
		f, ok := v.(float64)
		if !ok {
			return terms, fmt.Errorf("argument 'rate' is not a number but %T", v)
		}
		terms.AnnualRate = f / 100
	}
	if v, ok := args["months"]; ok {
		f, ok := v.(float64)
		if !ok {
			return terms, fmt.Errorf("argument 'months' is not a number but %T", v)
		}
		terms.TermMonths = int(f)
	}
	return terms, nil
}

func toolError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func toolOutput(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}
