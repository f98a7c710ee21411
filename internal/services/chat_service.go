package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sakanly_backend/internal/llm"
	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Intents returned by the classifier.
const (
	IntentProperty   = "property"
	IntentAgency     = "agency"
	IntentSubmit     = "submit"
	IntentContact    = "contact"
	IntentPriceRange = "price-range"
)

const classifierPrompt = `You are a classifier. Classify the user's question into one of the following categories:
- property
- agency
- submit
- contact
- price-range

Only return one word from the above.`

// Canned assistant responses, matching the public site copy.
const (
	answerSubmit = `لرفع العقار الخاص بك على موقع سكنلي , يمكنك التوجه الى نموذج ملئ بييانات العقار عن طريق الضغط على زر "أضف عقارك" باللون الازرق او اضغط على الرابط ...... للتوجه الى نموذج ملئ البيانات مباشرة , مع العلم انه سيتوجب عليك الانتظار لبضع ساعات حيث سيتم مراجعة كافة تفاصيل العقار من قبل أدمن موقع سكنلي قبل نشره , و عندها تستطيع متابعة حالة بيع عقارك و مشاهداته عن طريق صفحتك الشخصية على موقع سكنلي ... برجاء انشاء حساب و التاكد من تسجيل الدخول قبل البدء في عملية رفع عقارك على موقع سكنلي`

	answerContact = `نحن في خدمتك. للتواصل معنا : يمكنك الإتصال على 01097558591 , او إرسال بريد إلكتروني الى tasbih.attia@gmail.com`

	answerNoPriceMatch = `❌ لم أتمكن من العثور على عقارات تطابق سؤالك. حاول بصيغة أوضح أو مدينة/عنوان معروف.`

	answerUnknownIntent = `❌ لا أستطيع تحديد مصدر المعلومات المطلوب للإجابة على سؤالك.`

	propertyAssistantPrompt = `أنت مساعد ذكي متخصص في عرض العقارات. عندما تُعرض عليك بيانات عقارات، قدمها بشكل منسق وواضح باستخدام عناوين فرعية وفواصل واضحة بين كل عقار.`

	agencyAssistantPrompt = `You are a helpful assistant that answers based on website data.`

	propertyDirectPrompt = `You are a helpful assistant who answers questions about available properties on the website.`

	agencyDirectPrompt = `You are a helpful assistant that answers questions about real estate agencies listed on the website.`
)

// knownPropertyTypes are the localized type keywords the price-range filter
// recognizes in a question.
var knownPropertyTypes = []string{"شقة", "فيلا", "محل", "استوديو", "دوبلكس"}

type ChatService interface {
	SmartAsk(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error)
	AskProperty(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error)
	AskAgency(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error)
}

type chatService struct {
	propertyRepo repositories.PropertyRepository
	agencyRepo   repositories.AgencyRepository
	assistant    llm.Client
}

func NewChatService(propertyRepo repositories.PropertyRepository, agencyRepo repositories.AgencyRepository, assistant llm.Client) ChatService {
	return &chatService{propertyRepo: propertyRepo, agencyRepo: agencyRepo, assistant: assistant}
}

// SmartAsk classifies the question into one of the known intents and routes
// it: canned copy for submit/contact, a lexical price digest for price-range
// and retrieval-augmented answers for property/agency questions.
func (s *chatService) SmartAsk(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error) {
	raw, err := s.assistant.Complete(ctx, classifierPrompt, question)
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}
	intent := strings.ToLower(strings.TrimSpace(raw))

	switch intent {
	case IntentSubmit:
		return &dto.ChatResponse{Answer: answerSubmit, Intent: intent}, nil
	case IntentContact:
		return &dto.ChatResponse{Answer: answerContact, Intent: intent}, nil
	case IntentPriceRange:
		return s.answerPriceRange(db, question)
	case IntentProperty:
		return s.answerWithProperties(ctx, db, question, propertyAssistantPrompt, arabicFrame, arabicPropertyContext)
	case IntentAgency:
		return s.answerWithAgencies(ctx, db, question, agencyAssistantPrompt)
	default:
		return &dto.ChatResponse{Answer: answerUnknownIntent, Intent: intent}, nil
	}
}

// AskProperty skips classification and always answers from the property
// inventory.
func (s *chatService) AskProperty(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error) {
	return s.answerWithProperties(ctx, db, question, propertyDirectPrompt, englishFrame, plainPropertyContext)
}

// AskAgency skips classification and always answers from the agency list.
func (s *chatService) AskAgency(ctx context.Context, db *gorm.DB, question string) (*dto.ChatResponse, error) {
	return s.answerWithAgencies(ctx, db, question, agencyDirectPrompt)
}

// ---------------- Price Range ----------------

func (s *chatService) answerPriceRange(db *gorm.DB, question string) (*dto.ChatResponse, error) {
	properties, err := s.propertyRepo.FindListableProperties(db, "")
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}

	userText := strings.ToLower(question)
	isRent := strings.Contains(userText, "إيجار") || strings.Contains(userText, "rent")
	isSale := strings.Contains(userText, "بيع") || strings.Contains(userText, "sale")

	var selectedType string
	for _, t := range knownPropertyTypes {
		if strings.Contains(userText, t) {
			selectedType = t
			break
		}
	}

	var matched []models.Property
	for i := range properties {
		p := &properties[i]
		if isRent && p.Category != models.PropertyCategoryRent {
			continue
		}
		if isSale && p.Category != models.PropertyCategorySale {
			continue
		}
		if selectedType != "" && strings.ToLower(p.Type) != selectedType {
			continue
		}
		city := strings.ToLower(p.City)
		address := strings.ToLower(p.Address)
		if (city == "" || !strings.Contains(userText, city)) &&
			(address == "" || !strings.Contains(userText, address)) {
			continue
		}
		matched = append(matched, *p)
	}

	if len(matched) == 0 {
		return &dto.ChatResponse{Answer: answerNoPriceMatch, Intent: IntentPriceRange}, nil
	}

	min, max, sum := matched[0].Price, matched[0].Price, 0.0
	for _, p := range matched {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
		sum += p.Price
	}
	avg := int(math.Round(sum / float64(len(matched))))

	var scope string
	if isRent {
		scope = "للإيجار"
	} else if isSale {
		scope = "للبيع"
	}
	var typePart string
	if selectedType != "" {
		typePart = fmt.Sprintf(` لنوع العقار "%s"`, selectedType)
	}

	answer := fmt.Sprintf("📊 متوسط الأسعار %s%s في المنطقة المطلوبة يتراوح بين %s جنيه و %s جنيه. والمتوسط التقريبي هو %d جنيه.",
		scope, typePart, formatPrice(min), formatPrice(max), avg)

	cards := make([]dto.PropertyCardResponse, 0, len(matched))
	for i := range matched {
		cards = append(cards, dto.NewPropertyCardResponse(&matched[i]))
	}

	return &dto.ChatResponse{Answer: answer, Intent: IntentPriceRange, Matches: cards}, nil
}

// ---------------- Retrieval-Augmented Answers ----------------

// Context frames for the augmented prompts; the smart route speaks Arabic,
// the direct routes keep the English framing.
const (
	arabicFrame  = "السياق:\n%s\n\nسؤال المستخدم: %s"
	englishFrame = "Context:\n%s\n\nUser Question: %s"
)

func (s *chatService) answerWithProperties(ctx context.Context, db *gorm.DB, question, systemPrompt, frame string, format func([]models.Property) string) (*dto.ChatResponse, error) {
	properties, err := s.propertyRepo.FindListableProperties(db, "")
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}

	prompt := fmt.Sprintf(frame, format(properties), question)
	answer, err := s.assistant.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}
	return &dto.ChatResponse{Answer: answer, Intent: IntentProperty}, nil
}

func (s *chatService) answerWithAgencies(ctx context.Context, db *gorm.DB, question, systemPrompt string) (*dto.ChatResponse, error) {
	agencies, err := s.agencyRepo.FindAgencies(db)
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}

	blocks := make([]string, 0, len(agencies))
	for _, a := range agencies {
		description := a.Description
		if description == "" {
			description = "No description"
		}
		blocks = append(blocks, fmt.Sprintf("Agency: %s\nDescription: %s", a.Name, description))
	}

	prompt := fmt.Sprintf(englishFrame, strings.Join(blocks, "\n\n"), question)
	answer, err := s.assistant.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, apperrors.InternalError("chat", err)
	}
	return &dto.ChatResponse{Answer: answer, Intent: IntentAgency}, nil
}

// arabicPropertyContext renders the numbered Arabic blocks used by the smart
// route.
func arabicPropertyContext(properties []models.Property) string {
	blocks := make([]string, 0, len(properties))
	for i, p := range properties {
		description := p.Description
		if description == "" {
			description = "لا يوجد وصف"
		}
		blocks = append(blocks, fmt.Sprintf(
			"### 🏠 عقار رقم %d\n- النوع: %s\n- العنوان: %s\n- المدينة: %s\n- العنوان التفصيلي: %s\n- السعر: %s جنيه\n- الوصف: %s\n",
			i+1, p.Type, p.Title, p.City, p.Address, formatPrice(p.Price), description))
	}
	return strings.Join(blocks, "\n---\n")
}

// plainPropertyContext renders the flat key/value blocks used by the direct
// property route.
func plainPropertyContext(properties []models.Property) string {
	blocks := make([]string, 0, len(properties))
	for _, p := range properties {
		blocks = append(blocks, fmt.Sprintf(
			"Type: %s\nTitle: %s\nCity: %s\nAddress: %s\nPrice: %s\nDescription: %s",
			p.Type, p.Title, p.City, p.Address, formatPrice(p.Price), p.Description))
	}
	return strings.Join(blocks, "\n\n")
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
