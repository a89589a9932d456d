package terraform

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// moduleCall is a module block whose source is fetched from outside the repository.
type moduleCall struct {
	Name     string
	Source   string
	FilePath string
	Line     int
}

// diagnosis is what a local parse can tell about a failed validation. It never
// decides the verdict: the tool only loads the root module and the local
// modules it references, so a broken file elsewhere may be irrelevant.
type diagnosis struct {
	SyntaxErrors []string
	Remote       []moduleCall
}

// diagnose parses every file with the HCL parser the tool itself uses.
func diagnose(files []entities.SourceFile) diagnosis {
	parser := hclparse.NewParser()
	var result diagnosis

	for _, file := range files {
		parsed, diags := parser.ParseHCL([]byte(file.Content), file.Path)
		if diags.HasErrors() {
			result.SyntaxErrors = append(result.SyntaxErrors, diags.Error())
			continue
		}
		result.Remote = append(result.Remote, remoteModules(parsed, file.Path)...)
	}
	return result
}

// lines renders the diagnosis for the debug log.
func (d diagnosis) lines() []string {
	lines := make([]string, 0, len(d.SyntaxErrors)+len(d.Remote))
	lines = append(lines, d.SyntaxErrors...)
	for _, call := range d.Remote {
		lines = append(lines, "not fetched offline: "+call.String())
	}
	return lines
}

func remoteModules(file *hcl.File, filePath string) []moduleCall {
	if file == nil || file.Body == nil {
		return nil
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "module", LabelNames: []string{"name"}},
		},
	})
	if diags.HasErrors() {
		return nil
	}

	var calls []moduleCall
	for _, block := range content.Blocks {
		attrs, _ := block.Body.JustAttributes()
		sourceAttr, ok := attrs["source"]
		if !ok {
			continue
		}
		value, valueDiags := sourceAttr.Expr.Value(&hcl.EvalContext{})
		if valueDiags.HasErrors() || value.Type() != cty.String || !value.IsKnown() || value.IsNull() {
			continue
		}
		source := value.AsString()
		if isLocalSource(source) {
			continue
		}
		calls = append(calls, moduleCall{
			Name:     block.Labels[0],
			Source:   source,
			FilePath: filePath,
			Line:     block.DefRange.Start.Line,
		})
	}
	return calls
}

// isLocalSource reports module sources resolved inside the repository.
func isLocalSource(source string) bool {
	return strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

func (m moduleCall) String() string {
	return fmt.Sprintf("%s:%d module %q from %s", m.FilePath, m.Line, m.Name, m.Source)
}
