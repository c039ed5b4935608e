package local

import (
	"context"
	"testing"
	"time"

	"legal-info/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecognizeDates(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		locale string
		want   []providers.RecognizedDate
	}{
		{
			name:   "word month with dots",
			text:   "15.марта.2023",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "15.марта.2023", Date: date(2023, time.March, 15)}},
		},
		{
			name:   "word month with spaces inside sentence",
			text:   "Договор от 1 апреля 2024 г.",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "1 апреля 2024", Date: date(2024, time.April, 1)}},
		},
		{
			name:   "upper case month",
			text:   "15 МАРТА 2023",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "15 МАРТА 2023", Date: date(2023, time.March, 15)}},
		},
		{
			name:   "abbreviated month",
			text:   "3 сент. 2021",
			locale: "ru-RU",
			want:   []providers.RecognizedDate{{Span: "3 сент. 2021", Date: date(2021, time.September, 3)}},
		},
		{
			name:   "numeric date",
			text:   "15.03.2023",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "15.03.2023", Date: date(2023, time.March, 15)}},
		},
		{
			name:   "numeric short year",
			text:   "01/02/23",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "01/02/23", Date: date(2023, time.February, 1)}},
		},
		{
			name:   "two dates in discovery order",
			text:   "с 1 марта 2023 по 05.04.2024",
			locale: "ru",
			want: []providers.RecognizedDate{
				{Span: "1 марта 2023", Date: date(2023, time.March, 1)},
				{Span: "05.04.2024", Date: date(2024, time.April, 5)},
			},
		},
		{
			name:   "english month first",
			text:   "signed on March 5, 2023",
			locale: "en",
			want:   []providers.RecognizedDate{{Span: "March 5, 2023", Date: date(2023, time.March, 5)}},
		},
		{
			name:   "unknown locale uses every table",
			text:   "5 May 2023 und 6 мая 2023",
			locale: "de",
			want: []providers.RecognizedDate{
				{Span: "5 May 2023", Date: date(2023, time.May, 5)},
				{Span: "6 мая 2023", Date: date(2023, time.May, 6)},
			},
		},
		{
			name:   "word month short year",
			text:   "5 марта 23",
			locale: "ru",
			want:   []providers.RecognizedDate{{Span: "5 марта 23", Date: date(2023, time.March, 5)}},
		},
		{
			name:   "word month short year last century",
			text:   "7 May 99",
			locale: "en",
			want:   []providers.RecognizedDate{{Span: "7 May 99", Date: date(1999, time.May, 7)}},
		},
		{name: "three digit year", text: "5 марта 123", locale: "ru"},
		{name: "one digit year", text: "5 марта 7", locale: "ru"},
		{name: "invalid calendar date", text: "31.февраля.2023", locale: "ru"},
		{name: "invalid numeric month", text: "15.13.2023", locale: "ru"},
		{name: "mixed separators", text: "15.03-2023", locale: "ru"},
		{name: "glued to digits", text: "115.03.2023", locale: "ru"},
		{name: "english month in russian locale", text: "5 March 2023", locale: "ru"},
		{name: "no date", text: "срок действия 2 года", locale: "ru"},
	}

	r := NewRecognizer(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RecognizeDates(context.Background(), tt.text, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecognizeDatesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecognizer(zap.NewNop()).RecognizeDates(ctx, "15.03.2023", "ru")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecognizerName(t *testing.T) {
	var r providers.DateRecognizer = NewRecognizer(zap.NewNop())
	assert.Equal(t, "local", r.Name())
}
