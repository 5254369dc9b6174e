package bundle

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/davidbz/hearth/internal/domain"
	"github.com/davidbz/hearth/internal/mapping"
)

// Snippet targets.
const (
	TargetCurl       = "curl"
	TargetPython     = "python"
	TargetJavaScript = "javascript"
)

const snippetSamplePrompt = "Hello, world!"

// EmitSnippet renders source code in the target ecosystem that performs the
// same request the mapping engine would build for this bundle. Placeholder
// credentials are emitted as-is so the snippet documents where real keys go.
func EmitSnippet(desc *domain.APIDescription, cfg *domain.PortableConfig, target string) (string, error) {
	if desc == nil || cfg == nil {
		return "", fmt.Errorf("description and portable config are required")
	}

	prompt := cfg.PromptTemplate
	if prompt == "" {
		prompt = snippetSamplePrompt
	}

	spec, err := mapping.Build(desc, domain.CredentialSet(cfg.KeyData), &domain.GenerationRequest{
		Prompt:     prompt,
		Model:      cfg.Model,
		Parameters: cfg.Parameters,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build request for snippet: %w", err)
	}

	switch target {
	case TargetCurl:
		return emitCurl(spec), nil
	case TargetPython:
		return emitPython(spec), nil
	case TargetJavaScript:
		return emitJavaScript(spec), nil
	default:
		return "", fmt.Errorf("unsupported snippet target %q", target)
	}
}

// sortedHeaderKeys keeps snippet output deterministic.
func sortedHeaderKeys(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emitCurl(spec *domain.RequestSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s '%s' \\\n", spec.Method, spec.URL)
	for _, k := range sortedHeaderKeys(spec.Headers) {
		fmt.Fprintf(&b, "  -H '%s: %s' \\\n", k, spec.Headers[k])
	}
	body, _ := json.Marshal(spec.Body)
	fmt.Fprintf(&b, "  -d '%s'\n", string(body))
	return b.String()
}

func emitPython(spec *domain.RequestSpec) string {
	var b strings.Builder
	b.WriteString("import requests\n\n")
	fmt.Fprintf(&b, "url = %q\n", spec.URL)
	b.WriteString("headers = {\n")
	for _, k := range sortedHeaderKeys(spec.Headers) {
		fmt.Fprintf(&b, "    %q: %q,\n", k, spec.Headers[k])
	}
	b.WriteString("}\n")
	body, _ := json.MarshalIndent(spec.Body, "", "    ")
	fmt.Fprintf(&b, "payload = %s\n\n", string(body))
	fmt.Fprintf(&b, "response = requests.request(%q, url, headers=headers, json=payload)\n", spec.Method)
	b.WriteString("print(response.json())\n")
	return b.String()
}

func emitJavaScript(spec *domain.RequestSpec) string {
	var b strings.Builder
	body, _ := json.MarshalIndent(spec.Body, "", "  ")
	fmt.Fprintf(&b, "const response = await fetch(%q, {\n", spec.URL)
	fmt.Fprintf(&b, "  method: %q,\n", spec.Method)
	b.WriteString("  headers: {\n")
	for _, k := range sortedHeaderKeys(spec.Headers) {
		fmt.Fprintf(&b, "    %q: %q,\n", k, spec.Headers[k])
	}
	b.WriteString("  },\n")
	fmt.Fprintf(&b, "  body: JSON.stringify(%s),\n", string(body))
	b.WriteString("});\nconst data = await response.json();\nconsole.log(data);\n")
	return b.String()
}
