package llm

import "fmt"

const generateSystemPrompt = `You are an expert form builder. Create a user-friendly form from the user's requirements.

Guidelines:
- Keep forms intuitive and quick to complete
- Include appropriate validation rules
- Follow WCAG 2.1 accessibility practice
- Use clear, concise language
- Order questions logically
- Add helpful descriptions and placeholders

Industry: %s
Form type: %s`

const generateUserPrompt = `Create a form for: %s

Respond with a single JSON object of this shape:
{
  "title": "Form title",
  "description": "Brief description of the form",
  "fields": [
    {
      "id": "unique-id",
      "type": "text|email|number|select|textarea|checkbox|radio|date|file|rating",
      "label": "Field label",
      "placeholder": "Placeholder text",
      "required": true,
      "options": ["option1", "option2"],
      "validation": {"pattern": "regex", "minLength": 0, "maxLength": 0, "min": 0, "max": 0},
      "description": "Help text"
    }
  ],
  "settings": {
    "theme": "light|dark|auto",
    "showProgressBar": true,
    "allowMultipleSubmissions": false
  }
}
Only include "options" for select, radio and checkbox fields. Omit validation keys that do not apply.`

const optimizeSystemPrompt = `You are an expert in form conversion optimization. Analyze form performance data and give actionable recommendations that raise completion rates and improve the respondent experience.

Consider:
- Drop-off points and abandonment
- Completion times
- Interaction patterns per field
- Device-specific issues
- Accessibility
- Question clarity and flow`

const optimizeUserPrompt = `Analyze this form and its performance data.

Form: %s
Analytics: %s

Respond with a single JSON object of this shape:
{
  "recommendations": [
    {
      "type": "field-optimization|flow-improvement|validation-update|ui-enhancement",
      "description": "The issue",
      "action": "The specific change to make",
      "expectedImpact": "Expected effect on completion rate",
      "fieldId": "affected field id, if any",
      "priority": "high|medium|low"
    }
  ],
  "summary": {
    "currentCompletionRate": "current rate",
    "projectedImprovement": "projected improvement",
    "keyIssues": ["main issues"]
  }
}`

func generatePrompts(req GenerateRequest) (system, user string) {
	return fmt.Sprintf(generateSystemPrompt, req.Industry, req.Type), fmt.Sprintf(generateUserPrompt, req.Prompt)
}

func optimizePrompts(formJSON, analyticsJSON []byte) (system, user string) {
	return optimizeSystemPrompt, fmt.Sprintf(optimizeUserPrompt, formJSON, analyticsJSON)
}
