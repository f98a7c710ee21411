package services

import (
	"context"
	"testing"

	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatFixture(t *testing.T, assistant *fakeAssistant) (*gorm.DB, ChatService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewChatService(repositories.NewPropertyRepository(), repositories.NewAgencyRepository(), assistant)
	return db, svc
}

func TestSmartAskSubmitReturnsCannedAnswer(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"submit"}}
	db, svc := newChatFixture(t, assistant)

	resp, err := svc.SmartAsk(context.Background(), db, "ازاي ارفع عقاري على الموقع؟")
	require.NoError(t, err)

	assert.Equal(t, IntentSubmit, resp.Intent)
	assert.Equal(t, answerSubmit, resp.Answer)
	// canned intents never trigger a second completion
	assert.Equal(t, 1, assistant.calls)
}

func TestSmartAskContactNormalizesClassifierOutput(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"  Contact \n"}}
	db, svc := newChatFixture(t, assistant)

	resp, err := svc.SmartAsk(context.Background(), db, "كيف أتواصل معكم؟")
	require.NoError(t, err)

	assert.Equal(t, IntentContact, resp.Intent)
	assert.Equal(t, answerContact, resp.Answer)
	assert.Equal(t, 1, assistant.calls)
}

func TestSmartAskUnknownIntent(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"weather"}}
	db, svc := newChatFixture(t, assistant)

	resp, err := svc.SmartAsk(context.Background(), db, "كيف الطقس اليوم؟")
	require.NoError(t, err)

	assert.Equal(t, "weather", resp.Intent)
	assert.Equal(t, answerUnknownIntent, resp.Answer)
}

func TestSmartAskPropertyBuildsArabicContext(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"property", "إليك العقارات المتاحة"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "شقة مفروشة", City: "القاهرة", Address: "مدينة نصر", Type: "شقة", Price: 4500, Category: models.PropertyCategoryRent})

	resp, err := svc.SmartAsk(context.Background(), db, "هل يوجد شقق في القاهرة؟")
	require.NoError(t, err)

	assert.Equal(t, IntentProperty, resp.Intent)
	assert.Equal(t, "إليك العقارات المتاحة", resp.Answer)

	require.Equal(t, 2, assistant.calls)
	assert.Equal(t, propertyAssistantPrompt, assistant.systems[1])
	assert.Contains(t, assistant.users[1], "السياق:")
	assert.Contains(t, assistant.users[1], "عقار رقم 1")
	assert.Contains(t, assistant.users[1], "شقة مفروشة")
	assert.Contains(t, assistant.users[1], "سؤال المستخدم: هل يوجد شقق في القاهرة؟")
}

func TestAskPropertyUsesEnglishFraming(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"Here you go"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "شقة مفروشة", City: "القاهرة", Address: "مدينة نصر", Type: "شقة", Price: 4500, Category: models.PropertyCategoryRent})

	resp, err := svc.AskProperty(context.Background(), db, "Any apartments in Cairo?")
	require.NoError(t, err)

	assert.Equal(t, "Here you go", resp.Answer)
	require.Equal(t, 1, assistant.calls)
	assert.Equal(t, propertyDirectPrompt, assistant.systems[0])
	assert.Contains(t, assistant.users[0], "Context:")
	assert.Contains(t, assistant.users[0], "Title: شقة مفروشة")
	assert.NotContains(t, assistant.users[0], "السياق:")
}

func TestAskAgencyContext(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"Two agencies are listed."}}
	db, svc := newChatFixture(t, assistant)

	require.NoError(t, db.Create(&models.Agency{Name: "وكالة النيل", Description: "وسيط عقاري موثوق"}).Error)
	require.NoError(t, db.Create(&models.Agency{Name: "وكالة الدلتا"}).Error)

	resp, err := svc.AskAgency(context.Background(), db, "What agencies do you list?")
	require.NoError(t, err)

	assert.Equal(t, IntentAgency, resp.Intent)
	assert.Equal(t, "Two agencies are listed.", resp.Answer)
	assert.Equal(t, agencyDirectPrompt, assistant.systems[0])
	assert.Contains(t, assistant.users[0], "Agency: وكالة النيل")
	assert.Contains(t, assistant.users[0], "Description: وسيط عقاري موثوق")
	assert.Contains(t, assistant.users[0], "Description: No description")
}

// ---------------- Price Range ----------------

func TestSmartAskPriceRange(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"price-range"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "أ", City: "القاهرة", Type: "شقة", Price: 3000, Category: models.PropertyCategoryRent})
	seedListable(t, db, models.Property{Title: "ب", City: "القاهرة", Type: "شقة", Price: 5000, Category: models.PropertyCategoryRent})
	// wrong category
	seedListable(t, db, models.Property{Title: "ج", City: "القاهرة", Type: "شقة", Price: 900000, Category: models.PropertyCategorySale})
	// wrong type
	seedListable(t, db, models.Property{Title: "د", City: "القاهرة", Type: "فيلا", Price: 20000, Category: models.PropertyCategoryRent})
	// wrong city
	seedListable(t, db, models.Property{Title: "هـ", City: "الجيزة", Type: "شقة", Price: 100, Category: models.PropertyCategoryRent})

	resp, err := svc.SmartAsk(context.Background(), db, "ما متوسط أسعار إيجار شقة في القاهرة؟")
	require.NoError(t, err)

	assert.Equal(t, IntentPriceRange, resp.Intent)
	assert.Contains(t, resp.Answer, "للإيجار")
	assert.Contains(t, resp.Answer, `لنوع العقار "شقة"`)
	assert.Contains(t, resp.Answer, "3000 جنيه")
	assert.Contains(t, resp.Answer, "5000 جنيه")
	assert.Contains(t, resp.Answer, "4000 جنيه")
	assert.Len(t, resp.Matches, 2)
	// the digest is lexical, no second completion
	assert.Equal(t, 1, assistant.calls)
}

func TestSmartAskPriceRangeMatchesAddress(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"price-range"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "أ", City: "القاهرة", Address: "مدينة نصر", Type: "شقة", Price: 4000, Category: models.PropertyCategoryRent})

	resp, err := svc.SmartAsk(context.Background(), db, "كم إيجار شقة في مدينة نصر؟")
	require.NoError(t, err)

	assert.Equal(t, IntentPriceRange, resp.Intent)
	require.Len(t, resp.Matches, 1)
	assert.Contains(t, resp.Answer, "4000 جنيه")
}

func TestSmartAskPriceRangeSkipsUnlocatedProperties(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"price-range"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "أ", City: "القاهرة", Type: "شقة", Price: 3000, Category: models.PropertyCategoryRent})
	// no city and no address, must never match a location question
	seedListable(t, db, models.Property{Title: "مجهول", Type: "شقة", Price: 999999, Category: models.PropertyCategoryRent})

	resp, err := svc.SmartAsk(context.Background(), db, "ما متوسط أسعار إيجار شقة في القاهرة؟")
	require.NoError(t, err)

	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "أ", resp.Matches[0].Title)
	assert.NotContains(t, resp.Answer, "999999")
}

func TestSmartAskPriceRangeNoMatch(t *testing.T) {
	assistant := &fakeAssistant{responses: []string{"price-range"}}
	db, svc := newChatFixture(t, assistant)

	seedListable(t, db, models.Property{Title: "أ", City: "القاهرة", Type: "شقة", Price: 3000, Category: models.PropertyCategoryRent})

	resp, err := svc.SmartAsk(context.Background(), db, "ما متوسط الأسعار في أسوان؟")
	require.NoError(t, err)

	assert.Equal(t, IntentPriceRange, resp.Intent)
	assert.Equal(t, answerNoPriceMatch, resp.Answer)
	assert.Empty(t, resp.Matches)
}
