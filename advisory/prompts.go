package advisory

import "fmt"

func cropForecastPrompt(crop, location, language string) string {
	return fmt.Sprintf(`Provide 7-day %s-specific weather forecast for %s in %s. Include:
- Daily weather summary
- Temperature range
- Rainfall chances
- Impact on crop growth
- Recommended actions for farmers`, crop, location, language)
}

func marketAnalysisPrompt(crop, language string) string {
	return fmt.Sprintf(`Analyze current market trends for %s in Maharashtra in %s. Include:
- Current wholesale/retail prices
- Trend graph (text format)
- Demand forecast
- Best selling locations
- Best farmer strategy`, crop, language)
}

func pestAdvisoryPrompt(crop, region, language string) string {
	return fmt.Sprintf(`Provide pest/disease advisory for %s in %s in %s. Include:
- Current risk level
- Symptoms farmers should check
- Prevention steps
- Organic treatments
- Chemical solutions (only if severe)`, crop, region, language)
}

func locationInsightsPrompt(location, language string) string {
	return fmt.Sprintf(`Based only on the location %q, generate a complete agricultural insights report.

Output MUST be in clean JSON format:

{
  "location": "",
  "weather": {},
  "bestCrops": [],
  "fertilizerRecommendations": [],
  "spraySchedule": {},
  "soilAdvice": "",
  "irrigationAdvice": "",
  "pestRisk": [],
  "marketDemand": [],
  "todayActions": []
}

Sections to include:

1. Current weather summary (temp, humidity, rainfall, sunlight)
2. Best crops to grow today based on climate + season
3. 5 fertilizer spray recommendations with dose per litre
4. Spray interval + precautions
5. Soil preparation advice specific to this location
6. Irrigation requirement for today
7. Pest & disease risk prediction
8. Market-demand crops for the next 30 days
9. Final actionable steps for the farmer today

Language: %s
Strictly output JSON only.`, location, language)
}
