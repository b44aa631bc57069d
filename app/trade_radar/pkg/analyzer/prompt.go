package analyzer

import (
	"fmt"
	"time"

	"github.com/iWorld-y/trade_radar/app/trade_radar/pkg/sector"
)

const promptTpl = `You are an expert market analyst specializing in Indian trade opportunities.

Analyze the following market data for the %[1]s sector in India and create a comprehensive trade opportunities report.

Market Data:
%[2]s

Please provide a structured analysis in markdown format with the following sections:

# %[3]s Sector - Trade Opportunities Analysis

## Executive Summary
Provide a brief 2-3 sentence overview of the current market situation and key opportunities.

## Market Overview
- Current market size and growth rate
- Key trends and developments
- Major players and competition

## Trade Opportunities
### Export Opportunities
- Products/services with high export potential
- Target markets
- Estimated value/volume

### Import Opportunities
- Products/services needed in Indian market
- Source countries
- Market gap analysis

### Domestic Trade Opportunities
- B2B opportunities
- B2C opportunities
- Regional opportunities

## Market Drivers
- Key factors driving growth
- Government policies and incentives
- Technology and innovation trends

## Challenges and Risks
- Market entry barriers
- Regulatory challenges
- Competition and pricing pressures

## Recommendations
- Short-term action items (0-6 months)
- Medium-term strategies (6-12 months)
- Long-term vision (1-3 years)

## Key Contacts and Resources
- Industry associations
- Government bodies
- Useful websites and databases

---
*Report generated on %[4]s*

Be specific, data-driven, and actionable. Use bullet points for clarity. Include numerical data where available from the sources.`

// BuildPrompt 生成行业分析提示词
func BuildPrompt(sectorName, marketData string, now time.Time) string {
	return fmt.Sprintf(promptTpl, sectorName, marketData, sector.Title(sectorName), now.Format("January 02, 2006"))
}
