package render

import (
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-qtigen/internal/qti"
)

const (
	// ResponseIdent is the single response_lid every item declares.
	ResponseIdent  = "response1"
	PointsPossible = "1.0"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<questestinterop xmlns="http://www.imsglobal.org/xsd/ims_qtiasiv1p2" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.imsglobal.org/xsd/ims_qtiasiv1p2 http://www.imsglobal.org/xsd/ims_qtiasiv1p2p1.xsd">
<section ident="root_section">
`

const footer = `</section>
</questestinterop>`

const outcomes = `<outcomes>
<decvar maxvalue="100" minvalue="0" varname="SCORE" vartype="Decimal"/>
</outcomes>
`

const setScore = `<setvar action="Set" varname="SCORE">100</setvar>
`

// ItemOpen opens an <item> and writes its metadata and the question
// material. The presentation element is closed by ResponseLid.
func ItemOpen(ident, title, typeTag, text string) string {
	return fmt.Sprintf("<item ident=\"%s\" title=\"%s\">\n", ident, title) +
		Metadata(typeTag) +
		Presentation(text)
}

func Metadata(typeTag string) string {
	var b strings.Builder
	b.WriteString("<itemmetadata>\n<qtimetadata>\n")
	b.WriteString(metadataField("question_type", typeTag))
	b.WriteString(metadataField("points_possible", PointsPossible))
	b.WriteString("</qtimetadata>\n</itemmetadata>\n")
	return b.String()
}

func metadataField(label, entry string) string {
	return fmt.Sprintf("<qtimetadatafield>\n<fieldlabel>%s</fieldlabel>\n<fieldentry>%s</fieldentry>\n</qtimetadatafield>\n", label, entry)
}

// Presentation opens <presentation> with the prompt as HTML material.
func Presentation(text string) string {
	return fmt.Sprintf("<presentation>\n<material>\n<mattext texttype=\"text/html\">%s</mattext>\n</material>\n", text)
}

// ResponseLid wraps a render_choice fragment and closes the presentation.
func ResponseLid(ident string, card qti.Cardinality, renderChoice string) string {
	return fmt.Sprintf("<response_lid ident=\"%s\" rcardinality=\"%s\">\n%s</response_lid>\n</presentation>\n", ident, card, renderChoice)
}

// RenderChoice lists the options as response labels A, B, C, ...
func RenderChoice(options []string) string {
	var b strings.Builder
	b.WriteString("<render_choice>\n")
	for k, opt := range options {
		fmt.Fprintf(&b, "<response_label ident=\"%s\">\n<material>\n<mattext texttype=\"text/plain\">%s</mattext>\n</material>\n</response_label>\n", qti.ChoiceIdent(k), opt)
	}
	b.WriteString("</render_choice>\n")
	return b.String()
}

// SingleResprocessing awards full score when the response equals answer.
func SingleResprocessing(answer string) string {
	var b strings.Builder
	b.WriteString("<resprocessing>\n")
	b.WriteString(outcomes)
	b.WriteString("<respcondition continue=\"No\">\n<conditionvar>\n")
	b.WriteString(varEqual(answer))
	b.WriteString("</conditionvar>\n")
	b.WriteString(setScore)
	b.WriteString("</respcondition>\n</resprocessing>\n")
	return b.String()
}

// MultipleResprocessing awards full score only for the exact selection:
// every choice whose identifier occurs in answer must be selected and
// every other choice must not be.
func MultipleResprocessing(options []string, answer string) string {
	var b strings.Builder
	b.WriteString("<resprocessing>\n")
	b.WriteString(outcomes)
	b.WriteString("<respcondition continue=\"No\">\n<conditionvar>\n<and>\n")
	for k := range options {
		id := qti.ChoiceIdent(k)
		if strings.Contains(answer, id) {
			b.WriteString(varEqual(id))
		} else {
			b.WriteString("<not>\n" + varEqual(id) + "</not>\n")
		}
	}
	b.WriteString("</and>\n</conditionvar>\n")
	b.WriteString(setScore)
	b.WriteString("</respcondition>\n</resprocessing>\n")
	return b.String()
}

func varEqual(value string) string {
	return fmt.Sprintf("<varequal respident=\"%s\">%s</varequal>\n", ResponseIdent, value)
}
