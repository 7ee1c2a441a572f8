package kpi

// Retail benchmarks the insight rules compare against.
const (
	conversionExcellent = 15.0
	conversionGood      = 10.0
	conversionLow       = 12.0
	billValueLow        = 1500.0
	returnRateHigh      = 8.0
)

// Summary aggregates a set of KPI records.
type Summary struct {
	Records              int     `json:"records"`
	AvgConversionRate    float64 `json:"avgConversionRate"`
	AvgBillValue         float64 `json:"avgBillValue"`
	AvgReturnRate        float64 `json:"avgReturnRate"`
	AvgSatisfaction      float64 `json:"avgSatisfaction"`
	TotalFootfall        int     `json:"totalFootfall"`
	TotalSales           float64 `json:"totalSales"`
	TargetAchievementPct float64 `json:"targetAchievementPct"`
}

// Insights is a rule-based reading of a user's KPI history.
type Insights struct {
	PerformanceSummary string   `json:"performanceSummary"`
	ImprovementAreas   []string `json:"improvementAreas"`
	Recommendations    []string `json:"recommendations"`
}

// Summarize reduces KPI records to their aggregate metrics.
func Summarize(records []KpiData) Summary {
	s := Summary{Records: len(records)}
	if len(records) == 0 {
		return s
	}

	var totalTarget float64
	for _, r := range records {
		s.AvgConversionRate += r.ConversionRate
		s.AvgBillValue += r.AvgBillValue
		s.AvgReturnRate += r.ReturnRate
		s.AvgSatisfaction += r.CustomerSatisfaction
		s.TotalFootfall += r.Footfall
		s.TotalSales += r.ActualSales
		totalTarget += r.SalesTarget
	}
	n := float64(len(records))
	s.AvgConversionRate /= n
	s.AvgBillValue /= n
	s.AvgReturnRate /= n
	s.AvgSatisfaction /= n
	if totalTarget > 0 {
		s.TargetAchievementPct = s.TotalSales / totalTarget * 100
	}
	return s
}

// Analyze generates threshold-based insights from KPI records.
func Analyze(records []KpiData) Insights {
	ins := Insights{
		ImprovementAreas: []string{},
		Recommendations:  []string{},
	}
	if len(records) == 0 {
		ins.PerformanceSummary = "No KPI data available yet."
		return ins
	}

	s := Summarize(records)

	var conversionStatus string
	switch {
	case s.AvgConversionRate > conversionExcellent:
		conversionStatus = "excellent"
	case s.AvgConversionRate > conversionGood:
		conversionStatus = "good"
	default:
		conversionStatus = "needs improvement"
	}
	ins.PerformanceSummary = "Conversion rate is " + conversionStatus + "."

	if s.AvgConversionRate < conversionLow {
		ins.ImprovementAreas = append(ins.ImprovementAreas, "Conversion rate is below industry average")
		ins.Recommendations = append(ins.Recommendations, "Focus on customer engagement and needs assessment training")
	}
	if s.AvgBillValue < billValueLow {
		ins.ImprovementAreas = append(ins.ImprovementAreas, "Average bill value could be increased")
		ins.Recommendations = append(ins.Recommendations, "Implement cross-selling and upselling strategies")
	}
	if s.AvgReturnRate > returnRateHigh {
		ins.ImprovementAreas = append(ins.ImprovementAreas, "Return rate is higher than optimal")
		ins.Recommendations = append(ins.Recommendations, "Review product quality and size guidance processes")
	}
	return ins
}
