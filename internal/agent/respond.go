package agent

import (
	"fmt"
	"strings"

	"github.com/callsight/callsight/internal/knowledge"
	"github.com/callsight/callsight/internal/tools"
)

// narrate turns a tool result into display text: the tool's message plus
// insight lines for the optional fields the payload carries. Line order is
// fixed; absent fields are skipped.
func narrate(res *tools.Result) string {
	if res.Data == nil {
		return res.Message
	}

	var sb strings.Builder
	sb.WriteString(res.Message)
	sb.WriteString("\n\n")

	switch d := res.Data.(type) {
	case tools.MetricData:
		if d.Benchmark != "" {
			fmt.Fprintf(&sb, "📊 **Performance Assessment:** %s\n", d.Benchmark)
		}
		if d.BusinessContext != "" {
			fmt.Fprintf(&sb, "💡 **Business Context:** %s\n", d.BusinessContext)
		}
	case tools.CompareData:
		if d.ChangePct > 0 {
			sb.WriteString("📈 **Positive Trend:** This metric is improving, indicating good operational health.\n")
		}
	case tools.ForecastData:
		if d.Staffing.AdditionalNeeded > 0 {
			fmt.Fprintf(&sb, "⚠️ **Staffing Alert:** Consider adding %d more agents to handle projected demand.\n", d.Staffing.AdditionalNeeded)
		}
	}

	return strings.TrimSpace(sb.String())
}

// roleFallbacks are the canned per-role prompts used when no tool applies
// and no definition resolves.
var roleFallbacks = map[knowledge.Role]string{
	knowledge.RoleEnterpriseLeader: "I can help you with strategic KPIs like revenue impact, cost optimization, and ROI analysis. Try asking about 'revenue performance', 'cost per call analysis', or 'forecast next quarter demand'.",
	knowledge.RoleSupervisor:       "I can analyze team performance, agent metrics, and operational efficiency. Ask me about 'team performance analysis', 'agent utilization trends', or 'quality score breakdown'.",
	knowledge.RoleDeveloper:        "I can provide system performance insights and technical metrics. Try 'system performance analysis', 'API response time trends', or 'error rate investigation'.",
	knowledge.RoleAgent:            "I can help with your individual performance and customer insights. Ask about 'my performance metrics', 'customer satisfaction trends', or 'skill development areas'.",
}

const genericFallback = "How can I help you analyze your call center data today? I have access to various analytical tools and a comprehensive knowledge base."

// knowledgeResponse answers queries that planned no tools: a KPI definition
// card for definition intents, otherwise the role's canned prompt.
func (a *Agent) knowledgeResponse(intent Intent, role knowledge.Role) *Response {
	if intent.Type == IntentDefinition && len(intent.Entities) > 0 {
		if def, ok := a.store.KPIDefinition(intent.Entities[0]); ok {
			return &Response{
				Type: TypeKnowledge,
				Content: fmt.Sprintf("**%s**\n\n%s\n\n**Formula:** %s\n\n**Business Context:** %s",
					def.Name, def.Definition, def.Formula, def.BusinessContext),
				Data: def,
			}
		}
	}

	content, ok := roleFallbacks[role]
	if !ok {
		content = genericFallback
	}
	return &Response{Type: TypeText, Content: content}
}
