package service

import (
	"campaign/internal/entity"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Fields holds raw request values keyed by wire name.
// A missing key or a JSON null means "not supplied".
type Fields map[string]any

var (
	validate    = validator.New()
	timeOfDayRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)
	colorRule   = "oneof=" + strings.Join(entity.Colors, " ")
)

type fieldMode int

const (
	optional fieldMode = iota
	// nonEmpty fields may be omitted but must not be blank when supplied.
	nonEmpty
	// required fields must be supplied and not blank.
	required
)

// fieldReader pulls typed values out of Fields and accumulates every failure.
type fieldReader struct {
	fields Fields
	errs   []FieldError
}

func newFieldReader(fields Fields) *fieldReader {
	if fields == nil {
		fields = Fields{}
	}
	return &fieldReader{fields: fields}
}

func (r *fieldReader) fail(field, message string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: message})
}

func (r *fieldReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: r.errs}
}

func (r *fieldReader) raw(name string) (any, bool) {
	v, ok := r.fields[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *fieldReader) text(name string, mode fieldMode) *string {
	v, ok := r.raw(name)
	if !ok {
		if mode == required {
			r.fail(name, name+" is required")
		}
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, name+" must be a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" && mode != optional {
		r.fail(name, name+" is required")
		return nil
	}
	return &s
}

func (r *fieldReader) flag(name string) *bool {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	b, err := ParseFlag(v)
	if err != nil {
		r.fail(name, name+" must be true or false")
		return nil
	}
	return &b
}

func (r *fieldReader) color(name string, mode fieldMode) *string {
	s := r.text(name, mode)
	if s == nil {
		return nil
	}
	if err := validate.Var(*s, colorRule); err != nil {
		r.fail(name, name+" must be one of "+strings.Join(entity.Colors, ", "))
		return nil
	}
	return s
}

func (r *fieldReader) email(name string, mode fieldMode) *string {
	s := r.text(name, mode)
	if s == nil || *s == "" {
		return s
	}
	if err := validate.Var(*s, "email"); err != nil {
		r.fail(name, "Invalid email")
		return nil
	}
	return s
}

func (r *fieldReader) displayOrder(name string) *int {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	var n int64
	var err error
	switch t := v.(type) {
	case json.Number:
		n, err = t.Int64()
	case float64:
		if t != math.Trunc(t) {
			err = fmt.Errorf("not an integer")
		}
		n = int64(t)
	case int:
		n = int64(t)
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	default:
		err = fmt.Errorf("unsupported type %T", v)
	}
	if err != nil || n < 1 || n > math.MaxInt32 {
		r.fail(name, name+" must be a positive integer")
		return nil
	}
	order := int(n)
	return &order
}

func (r *fieldReader) date(name string, mode fieldMode) *datatypes.Date {
	s := r.text(name, mode)
	if s == nil {
		return nil
	}
	parsed, err := parseCalendarDate(*s)
	if err != nil {
		r.fail(name, "Valid date is required")
		return nil
	}
	d := datatypes.Date(parsed)
	return &d
}

func (r *fieldReader) timeOfDay(name string, mode fieldMode) *datatypes.Time {
	s := r.text(name, mode)
	if s == nil {
		return nil
	}
	t, err := parseTimeOfDay(*s)
	if err != nil {
		r.fail(name, "Valid time is required (HH:MM)")
		return nil
	}
	return &t
}

// socialLinks never fails: an object or a string holding a JSON object is accepted,
// anything else becomes an empty object.
func (r *fieldReader) socialLinks(name string) *datatypes.JSONMap {
	v, ok := r.raw(name)
	if !ok {
		return nil
	}
	links := ParseSocialLinks(v)
	return &links
}

// ParseSocialLinks normalises a social_links value into a JSON object.
func ParseSocialLinks(value any) datatypes.JSONMap {
	switch v := value.(type) {
	case map[string]any:
		return datatypes.JSONMap(v)
	case datatypes.JSONMap:
		return v
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &parsed); err != nil || parsed == nil {
			return datatypes.JSONMap{}
		}
		return datatypes.JSONMap(parsed)
	default:
		return datatypes.JSONMap{}
	}
}

// calendarDateLayouts are the ISO 8601 forms accepted for event_date; only the date part is kept.
var calendarDateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

func parseCalendarDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range calendarDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseTimeOfDay(value string) (datatypes.Time, error) {
	m := timeOfDayRe.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	return datatypes.NewTime(hour, minute, second, 0), nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CandidateInput carries the decoding switches that depend on configuration.
type CandidateInput struct {
	EmailRequired bool
}

// DecodeCandidate validates a create request. A missing is_active defaults to true
// and a missing color to purple.
func (in CandidateInput) DecodeCandidate(fields Fields) (*entity.Candidate, error) {
	r := newFieldReader(fields)
	emailMode := optional
	if in.EmailRequired {
		emailMode = required
	}

	c := &entity.Candidate{
		Name:     deref(r.text("name", required)),
		Position: deref(r.text("position", required)),
		BioDE:    deref(r.text("bio_de", required)),
		BioEN:    deref(r.text("bio_en", required)),
		GoalsDE:  deref(r.text("goals_de", required)),
		GoalsEN:  deref(r.text("goals_en", required)),
		Email:    deref(r.email("email", emailMode)),
		IsActive: true,
		Color:    entity.ColorPurple,
	}
	if links := r.socialLinks("social_links"); links != nil {
		c.SocialLinks = *links
	} else {
		c.SocialLinks = datatypes.JSONMap{}
	}
	if active := r.flag("is_active"); active != nil {
		c.IsActive = *active
	}
	if color := r.color("color", nonEmpty); color != nil {
		c.Color = *color
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeCandidateUpdates validates a sparse candidate patch.
func (in CandidateInput) DecodeCandidateUpdates(fields Fields) (entity.CandidateUpdates, error) {
	r := newFieldReader(fields)
	emailMode := optional
	if in.EmailRequired {
		emailMode = nonEmpty
	}
	updates := entity.CandidateUpdates{
		Name:        r.text("name", nonEmpty),
		Position:    r.text("position", nonEmpty),
		BioDE:       r.text("bio_de", nonEmpty),
		BioEN:       r.text("bio_en", nonEmpty),
		GoalsDE:     r.text("goals_de", nonEmpty),
		GoalsEN:     r.text("goals_en", nonEmpty),
		Email:       r.email("email", emailMode),
		SocialLinks: r.socialLinks("social_links"),
		IsActive:    r.flag("is_active"),
		Color:       r.color("color", nonEmpty),
	}
	return updates, r.err()
}

// DecodeTopic validates a policy or basic topic create request.
func DecodeTopic(fields Fields) (entity.TopicFields, bool, error) {
	r := newFieldReader(fields)
	topic := entity.TopicFields{
		TitleDE:       deref(r.text("title_de", required)),
		TitleEN:       deref(r.text("title_en", required)),
		DescriptionDE: deref(r.text("description_de", required)),
		DescriptionEN: deref(r.text("description_en", required)),
		Color:         deref(r.color("color", required)),
	}
	active := true
	if v := r.flag("is_active"); v != nil {
		active = *v
	}
	return topic, active, r.err()
}

// DecodeTopicUpdates validates a sparse policy or basic topic patch.
func DecodeTopicUpdates(fields Fields) (entity.TopicUpdates, error) {
	r := newFieldReader(fields)
	updates := entity.TopicUpdates{
		TitleDE:       r.text("title_de", nonEmpty),
		TitleEN:       r.text("title_en", nonEmpty),
		DescriptionDE: r.text("description_de", nonEmpty),
		DescriptionEN: r.text("description_en", nonEmpty),
		Color:         r.color("color", nonEmpty),
		IsActive:      r.flag("is_active"),
		DisplayOrder:  r.displayOrder("display_order"),
	}
	return updates, r.err()
}

// DecodeFAQ validates a FAQ create request.
func DecodeFAQ(fields Fields) (*entity.FAQ, error) {
	r := newFieldReader(fields)
	faq := &entity.FAQ{
		QuestionDE: deref(r.text("question_de", required)),
		QuestionEN: deref(r.text("question_en", required)),
		AnswerDE:   deref(r.text("answer_de", required)),
		AnswerEN:   deref(r.text("answer_en", required)),
		IsActive:   true,
	}
	if v := r.flag("is_active"); v != nil {
		faq.IsActive = *v
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return faq, nil
}

// DecodeFAQUpdates validates a sparse FAQ patch.
func DecodeFAQUpdates(fields Fields) (entity.FAQUpdates, error) {
	r := newFieldReader(fields)
	updates := entity.FAQUpdates{
		QuestionDE:   r.text("question_de", nonEmpty),
		QuestionEN:   r.text("question_en", nonEmpty),
		AnswerDE:     r.text("answer_de", nonEmpty),
		AnswerEN:     r.text("answer_en", nonEmpty),
		IsActive:     r.flag("is_active"),
		DisplayOrder: r.displayOrder("display_order"),
	}
	return updates, r.err()
}

// DecodeEvent validates an event create request.
func DecodeEvent(fields Fields) (*entity.Event, error) {
	r := newFieldReader(fields)
	event := &entity.Event{
		TitleDE:       deref(r.text("title_de", required)),
		TitleEN:       deref(r.text("title_en", required)),
		EventDate:     deref(r.date("event_date", required)),
		EventTime:     deref(r.timeOfDay("event_time", required)),
		LocationDE:    deref(r.text("location_de", required)),
		LocationEN:    deref(r.text("location_en", required)),
		DescriptionDE: deref(r.text("description_de", required)),
		DescriptionEN: deref(r.text("description_en", required)),
		IsActive:      true,
	}
	if v := r.flag("is_active"); v != nil {
		event.IsActive = *v
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return event, nil
}

// DecodeEventUpdates validates a sparse event patch.
func DecodeEventUpdates(fields Fields) (entity.EventUpdates, error) {
	r := newFieldReader(fields)
	updates := entity.EventUpdates{
		TitleDE:       r.text("title_de", nonEmpty),
		TitleEN:       r.text("title_en", nonEmpty),
		EventDate:     r.date("event_date", nonEmpty),
		EventTime:     r.timeOfDay("event_time", nonEmpty),
		LocationDE:    r.text("location_de", nonEmpty),
		LocationEN:    r.text("location_en", nonEmpty),
		DescriptionDE: r.text("description_de", nonEmpty),
		DescriptionEN: r.text("description_en", nonEmpty),
		IsActive:      r.flag("is_active"),
		DisplayOrder:  r.displayOrder("display_order"),
	}
	return updates, r.err()
}
