package fix

import (
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
)

// stubData parameterizes every stub template. Templates are fixed skeletons;
// only the title (and its derivatives) varies.
type stubData struct {
	Title      string
	TitleLower string
	Stem       string
}

// stubTemplates maps a target-substring marker to its template. The slice is
// ordered: the first marker contained in the raw target wins, and the final
// entry (empty marker) is the generic fallback.
var stubTemplates = []struct {
	marker string
	tmpl   *template.Template
}{
	{"how-to-guides/", mustParse("how-to", howToTemplate)},
	{"reference/", mustParse("reference", referenceTemplate)},
	{"explanation/", mustParse("explanation", explanationTemplate)},
	{"tutorials/", mustParse("tutorial", tutorialTemplate)},
	{"", mustParse("generic", genericTemplate)},
}

var adrTemplate = mustParse("adr", sampleADRTemplate)

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// renderStub builds the stub content for a target path. The template is
// selected by substring match on the raw URL; the title is derived from the
// final filename.
func renderStub(targetAbs, rawURL string) string {
	stem := strings.TrimSuffix(filepath.Base(targetAbs), filepath.Ext(targetAbs))
	title := titleFromStem(stem)
	data := stubData{Title: title, TitleLower: strings.ToLower(title), Stem: stem}

	for _, st := range stubTemplates {
		if st.marker == "" || strings.Contains(rawURL, st.marker) {
			var b strings.Builder
			_ = st.tmpl.Execute(&b, data)
			return b.String()
		}
	}
	return "" // unreachable: the fallback entry always matches
}

// renderSampleADR builds one placeholder ADR document.
func renderSampleADR(number, title string) string {
	var b strings.Builder
	_ = adrTemplate.Execute(&b, struct {
		Number string
		Title  string
	}{Number: number, Title: title})
	return b.String()
}

// titleFromStem converts a filename stem into a human-readable title:
// hyphens and underscores become spaces, each word is capitalized.
func titleFromStem(stem string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

const howToTemplate = `# 🛠️ How-To: {{.Title}}

**Step-by-step guide for {{.TitleLower}}.**

**When to use this guide**: [Describe when to follow this guide]

---

## 🎯 Quick Start

### Prerequisites
- A working project checkout
- [Additional prerequisites]

### Basic Usage
` + "```bash" + `
# Basic command example
make [target]
` + "```" + `

---

## 📋 Step-by-Step Process

### Step 1: [First Step]
[Detailed instructions for the first step]

### Step 2: [Second Step]
[Detailed instructions for the second step]

### Step 3: [Third Step]
[Detailed instructions for the third step]

---

## 🔧 Advanced Configuration

### [Advanced Topic 1]
[Advanced configuration details]

### [Advanced Topic 2]
[More advanced configuration]

---

## 🚨 Troubleshooting

### Common Issues
- **Issue 1**: [Description and solution]
- **Issue 2**: [Description and solution]

### Error Messages
- ` + "`Error message`" + `: [Explanation and fix]

---

## 📚 Related Documentation

- **Related Guide 1** - [Description]
- **Related Guide 2** - [Description]

---

**Need help with {{.TitleLower}}?** → check the **[Troubleshooting](#-troubleshooting)** section above
`

const referenceTemplate = `# 📚 {{.Title}} Reference

**Complete reference documentation for {{.TitleLower}}.**

---

## 📋 Quick Reference

| Item | Description | Usage |
|------|-------------|-------|
| [Item 1] | [Description] | [Usage example] |
| [Item 2] | [Description] | [Usage example] |

---

## 🔧 Detailed Reference

### [Section 1]
[Detailed reference information]

#### Parameters
- ` + "`parameter1`" + `: [Description]
- ` + "`parameter2`" + `: [Description]

#### Examples
` + "```json" + `
{
  "example": "configuration"
}
` + "```" + `

### [Section 2]
[More detailed reference information]

---

## 📊 Configuration Options

### [Configuration Category 1]
` + "```yaml" + `
configuration:
  option1: value1
  option2: value2
` + "```" + `

### [Configuration Category 2]
[Configuration details]

---

## 🔗 Related Documentation

- **API Reference** - Complete API documentation
- **How-To Guides** - Step-by-step guides

---

**Need help with {{.TitleLower}}?** → see the **[Quick Reference](#-quick-reference)** above
`

const explanationTemplate = `# 🧠 {{.Title}}

**Understanding {{.TitleLower}}: architecture and design philosophy.**

---

## 🎯 Overview

[High-level explanation of the concept]

### Key Concepts
- **Concept 1**: [Explanation]
- **Concept 2**: [Explanation]
- **Concept 3**: [Explanation]

---

## 🏗️ Architecture and Design

### [Design Principle 1]
[Detailed explanation of the design principle]

### [Design Principle 2]
[Another design principle explanation]

---

## 🔄 How It Works

### [Process 1]
[Step-by-step explanation of how something works]

### [Process 2]
[Another process explanation]

---

## 💡 Design Decisions

### [Decision 1]
**Problem**: [What problem this solves]
**Solution**: [How it's solved]
**Trade-offs**: [What trade-offs were made]

### [Decision 2]
**Problem**: [Problem description]
**Solution**: [Solution description]
**Trade-offs**: [Trade-off analysis]

---

## 🔗 Related Concepts

- **Related Concept 1** - [Brief description]
- **Related Concept 2** - [Brief description]

---

## 📚 Further Reading

- **Implementation Guide** - How to implement these concepts
- **API Reference** - Technical reference documentation

---

**Questions about {{.TitleLower}}?** → start with the **[Further Reading](#-further-reading)** links above
`

const tutorialTemplate = `# 🎓 Tutorial: {{.Title}}

**Learn {{.TitleLower}} through hands-on examples and exercises.**

**Prerequisites**: [List prerequisites]
**Estimated time**: [Time estimate]
**Difficulty**: [Beginner/Intermediate/Advanced]

---

## 🎯 What You'll Learn

By the end of this tutorial, you'll be able to:
- [Learning objective 1]
- [Learning objective 2]
- [Learning objective 3]

---

## 📋 Tutorial Steps

### Step 1: [Setup/Introduction]
[Detailed tutorial step with examples]

` + "```bash" + `
# Example command
make example
` + "```" + `

### Step 2: [Main Content]
[Next tutorial step]

### Step 3: [Advanced Topics]
[Advanced tutorial content]

---

## 🧪 Exercises

### Exercise 1: [Exercise Name]
**Objective**: [What the exercise teaches]
**Instructions**: [Step-by-step instructions]

### Exercise 2: [Exercise Name]
**Objective**: [Exercise objective]
**Instructions**: [Exercise instructions]

---

## ✅ Summary

In this tutorial, you learned:
- [Summary point 1]
- [Summary point 2]
- [Summary point 3]

---

## 🚀 Next Steps

- **Next Tutorial** - [Description]
- **Related How-To Guide** - [Description]

---

**Questions about this tutorial?** → see the **[Next Steps](#-next-steps)** above
`

const genericTemplate = `# {{.Title}}

**[Brief description of what this document covers]**

---

## Overview

[Content overview]

## [Section 1]

[Content for section 1]

## [Section 2]

[Content for section 2]

---

## Related Documentation

- **Related Doc 1** - [Description]
- **Related Doc 2** - [Description]

---

**Need help?** → see the **[Related Documentation](#related-documentation)** above
`

const sampleADRTemplate = `# ADR-{{.Number}}: {{.Title}}

**Status**: Accepted
**Date**: 2024-01-15
**Deciders**: Architecture Team

## Context

This is a sample architectural decision record demonstrating the ADR format
and structure used in this project.

## Decision

We will use this sample ADR to demonstrate:
- Proper ADR structure and formatting
- Decision documentation best practices
- Cross-referencing between decision records

## Consequences

### Positive
- Provides concrete examples for users
- Demonstrates ADR best practices
- Shows integration with analysis tools

### Negative
- Requires maintenance to keep examples current
- May not reflect all possible ADR variations

## Implementation

This sample ADR serves as a template and reference for:
1. New teams adopting ADRs
2. Training and onboarding materials
3. Testing ADR analysis tools

## Related Decisions

- This is a standalone sample decision
- Links to other sample ADRs in this directory
- Demonstrates cross-referencing between ADRs

---

*This is a sample ADR created for demonstration purposes.*
`
