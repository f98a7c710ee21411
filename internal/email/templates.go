package email

import (
	"bytes"
	"html/template"
)

// Subjects of the moderation notifications, matching the public site copy.
const (
	SubjectPropertyApproved = "تمت الموافقة على عقارك"
	SubjectPropertyDenied   = "تحديث بخصوص عقارك"
)

// ModerationData feeds the approval/denial templates.
type ModerationData struct {
	ContactName   string
	PropertyTitle string
	Reason        string
	ClientURL     string
}

var approvedTmpl = template.Must(template.New("approved").Parse(`
<div style="font-family:'Segoe UI',Tahoma,sans-serif;max-width:600px;margin:0 auto" dir="rtl">
  <div style="background:#667eea;padding:24px;text-align:center">
    <h1 style="color:#fff;margin:0">تمت الموافقة على عقارك</h1>
    <p style="color:#fff;margin:8px 0 0">مرحباً بك في سكنلي</p>
  </div>
  <div style="padding:24px">
    <p>مرحباً <strong>{{.ContactName}}</strong>،</p>
    <p>تمت الموافقة على عقارك بعنوان:</p>
    <blockquote style="border-right:4px solid #667eea;padding:12px;margin:16px 0">
      <strong>{{.PropertyTitle}}</strong>
    </blockquote>
    <ul>
      <li>عقارك سيظهر في نتائج البحث</li>
      <li>يمكن للعملاء التواصل معك مباشرة</li>
      <li>ستحصل على إشعارات عند وجود استفسارات</li>
    </ul>
    <p style="text-align:center"><a href="{{.ClientURL}}">تصفح المنصة</a></p>
  </div>
  <div style="background:#f8f9fa;padding:16px;text-align:center;color:#6c757d">
    شكراً لك على استخدام منصة سكنلي
  </div>
</div>`))

var deniedTmpl = template.Must(template.New("denied").Parse(`
<div style="font-family:'Segoe UI',Tahoma,sans-serif;max-width:600px;margin:0 auto" dir="rtl">
  <div style="background:#ff6b6b;padding:24px;text-align:center">
    <h1 style="color:#fff;margin:0">تحديث بخصوص عقارك</h1>
    <p style="color:#fff;margin:8px 0 0">منصة سكنلي</p>
  </div>
  <div style="padding:24px">
    <p>مرحباً <strong>{{.ContactName}}</strong>،</p>
    <p>نعتذر، لم يتم قبول عقارك بعنوان:</p>
    <blockquote style="border-right:4px solid #ff6b6b;padding:12px;margin:16px 0">
      <strong>{{.PropertyTitle}}</strong>
    </blockquote>
    <p><strong>سبب الرفض:</strong> {{.Reason}}</p>
    <ul>
      <li>تأكد من صحة جميع المعلومات المقدمة</li>
      <li>أضف صور واضحة وعالية الجودة</li>
      <li>اكتب وصفاً مفصلاً ومفيداً</li>
    </ul>
    <p style="text-align:center"><a href="{{.ClientURL}}/uploadProperty">إضافة عقار جديد</a></p>
  </div>
  <div style="background:#f8f9fa;padding:16px;text-align:center;color:#6c757d">
    شكراً لك على استخدام منصة سكنلي
  </div>
</div>`))

// RenderApproved builds the approval notification body.
func RenderApproved(data ModerationData) (string, error) {
	return render(approvedTmpl, data)
}

// RenderDenied builds the denial notification body. An empty reason is shown
// as "غير محدد".
func RenderDenied(data ModerationData) (string, error) {
	if data.Reason == "" {
		data.Reason = "غير محدد"
	}
	return render(deniedTmpl, data)
}

func render(tmpl *template.Template, data ModerationData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
