package tui

import (
	"fmt"
	"strings"

	"datescore-cli/internal/submit"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	key     string
	label   string
	choices []string // non-nil: cycled with left/right instead of typed
	choice  int      // -1 until a choice is made
	input   textinput.Model
}

func (f formField) value() string {
	if f.choices != nil {
		if f.choice < 0 || f.choice >= len(f.choices) {
			return ""
		}
		return f.choices[f.choice]
	}
	return f.input.Value()
}

// submitForm is the date plan entry form. The cursor may rest on the submit button,
// which sits one past the last field.
type submitForm struct {
	fields  []formField
	cursor  int
	editing bool
	err     string
	busy    bool
	gen     int // bumped per submission; replies from older ones are dropped
}

func newSubmitForm() *submitForm {
	text := func(key, label, placeholder string) formField {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholder
		in.CharLimit = 200
		return formField{key: key, label: label, choice: -1, input: in}
	}
	choice := func(key, label string, choices []string) formField {
		return formField{key: key, label: label, choices: choices, choice: -1}
	}
	return &submitForm{fields: []formField{
		text("age", "年齢", "25"),
		choice("occupation", "職業", submit.Occupations),
		choice("gender", "性別", submit.Genders),
		text("date", "日付", "YYYY-MM-DD"),
		choice("timeOfDay", "時間帯", submit.TimesOfDay),
		text("dateNumber", "デート回数", "3"),
		text("location", "場所", "水族館"),
		text("cost", "費用", "3000"),
		text("additionalNotes", "追記事項", "任意"),
	}}
}

func (f *submitForm) onButton() bool { return f.cursor == len(f.fields) }

func (f *submitForm) move(delta int) {
	f.stopEditing()
	f.cursor = min(max(f.cursor+delta, 0), len(f.fields))
}

// cycle steps the choice under the cursor. It is a no-op on text fields.
func (f *submitForm) cycle(delta int) {
	if f.onButton() {
		return
	}
	fld := &f.fields[f.cursor]
	if fld.choices == nil {
		return
	}
	n := len(fld.choices)
	if fld.choice < 0 {
		if delta > 0 {
			fld.choice = 0
		} else {
			fld.choice = n - 1
		}
		return
	}
	fld.choice = ((fld.choice+delta)%n + n) % n
}

// edit focuses the text field under the cursor. It reports false for choices and the button.
func (f *submitForm) edit() bool {
	if f.onButton() || f.fields[f.cursor].choices != nil {
		return false
	}
	f.editing = true
	f.fields[f.cursor].input.Focus()
	return true
}

func (f *submitForm) stopEditing() {
	f.editing = false
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

func (f *submitForm) value(key string) string {
	for _, fld := range f.fields {
		if fld.key == key {
			return fld.value()
		}
	}
	return ""
}

func (f *submitForm) plan() submit.Plan {
	return submit.Plan{
		Age:             f.value("age"),
		Occupation:      f.value("occupation"),
		Gender:          f.value("gender"),
		Date:            f.value("date"),
		TimeOfDay:       f.value("timeOfDay"),
		DateNumber:      f.value("dateNumber"),
		Location:        f.value("location"),
		Cost:            f.value("cost"),
		AdditionalNotes: f.value("additionalNotes"),
	}
}

func (f *submitForm) view(width int) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("デートプランを投稿して偏差値を診断") + "\n\n")

	labelW := 12
	for i := range f.fields {
		fld := &f.fields[i]
		fld.input.Width = max(width-labelW-4, 8)

		mark := "  "
		if i == f.cursor {
			mark = glyphCursor() + " "
		}
		var val string
		if fld.choices != nil {
			v := fld.value()
			if v == "" {
				v = styleMuted().Render("選択してください")
			}
			val = "‹ " + v + " ›"
		} else {
			val = fld.input.View()
		}
		if fld.key == "date" {
			if dow, ok := submit.DayOfWeek(fld.input.Value()); ok {
				val += styleMuted().Render(fmt.Sprintf(" (%s曜日)", dow))
			}
		}
		label := fld.label
		if pad := labelW - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		b.WriteString(mark + styleMuted().Render(label) + val + "\n")
	}

	b.WriteString("\n")
	btn := "[ 診断する ]"
	if f.busy {
		btn = "[ 診断中... ]"
	}
	if f.onButton() {
		b.WriteString(glyphCursor() + " " + styleNavActive().Render(btn) + "\n")
	} else {
		b.WriteString("  " + btn + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + styleError().Render(wrapText(f.err, width)) + "\n")
	}
	return b.String()
}
