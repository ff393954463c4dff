// internal/service/template_service.go
package service

import (
    "strings"
)

// ConfirmationTemplate is rendered for every new reservation
const ConfirmationTemplate = "Hi {first_name}, your table for {num_guests} on {start_at} is confirmed."

// RenderTemplate replaces each {key} with its value in a single pass, so
// placeholders inside substituted values are left alone. Empty values become "N/A".
func RenderTemplate(template string, data map[string]string) string {
    pairs := make([]string, 0, 2*len(data))
    for k, v := range data {
        if v == "" {
            v = "N/A"
        }
        pairs = append(pairs, "{"+k+"}", v)
    }
    return strings.NewReplacer(pairs...).Replace(template)
}
