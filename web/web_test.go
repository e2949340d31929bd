package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/locale"
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, form)
}

func (c *client) login(username, password string) {
	c.t.Helper()
	rec := c.post("/admin/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(c.t, http.StatusFound, rec.Code)
	require.Equal(c.t, "/admin", rec.Header().Get("Location"))
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("PORTAL_ADMIN_USERNAME", "chief")
	t.Setenv("PORTAL_ADMIN_PASSWORD", "chief-pass")
	t.Setenv("PORTAL_UPLOAD_FOLDER", filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "portal.db")))
	require.NoError(t, locale.InitLocalizer(i18nFS, "ru-RU"))
	service.SetChannels()
	t.Cleanup(func() { _ = database.CloseDB() })

	engine, err := NewServer().NewEngine()
	require.NoError(t, err)
	return engine
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine, cookies: map[string]*http.Cookie{}}
}

func count(t *testing.T, table any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.GetDB().Model(table).Count(&n).Error)
	return n
}

func createStaff(t *testing.T, username string) {
	t.Helper()
	_, err := (&service.UserService{}).CreateUser(service.UserForm{
		Username: username,
		Password: username + "-pass",
		Role:     model.RoleInvestigator,
		FullName: "СИДОРОВ " + username,
	})
	require.NoError(t, err)
}

func TestPublicPagesRender(t *testing.T) {
	c := newClient(t, newTestServer(t))
	for _, path := range []string{"/", "/feedback", "/reviews", "/job-application", "/track-application", "/admin/login"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestUnknownPathsRenderNotFound(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Страница не найдена")

	assert.Equal(t, http.StatusNotFound, c.get("/news/9999").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/news/abc").Code)
}

func TestFeedbackSubmissionCreatesNotification(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.post("/feedback", url.Values{
		"full_name": {"Иванов Иван"},
		"email":     {"ivanov@example.com"},
		"message":   {"Прошу рассмотреть обращение"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/feedback", rec.Header().Get("Location"))
	assert.EqualValues(t, 1, count(t, &model.Feedback{}))
	assert.EqualValues(t, 1, count(t, &model.Notification{}))

	rec = c.get("/feedback")
	assert.Contains(t, rec.Body.String(), "Заявление отправлено")
}

func TestFeedbackValidationRedisplaysForm(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.post("/feedback", url.Values{"full_name": {"Иванов"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Заполните все обязательные поля")
	assert.Contains(t, rec.Body.String(), `value="Иванов"`)
	assert.Zero(t, count(t, &model.Feedback{}))
}

func TestReviewRatingValidation(t *testing.T) {
	c := newClient(t, newTestServer(t))
	form := url.Values{
		"author_name": {"петров"},
		"rating":      {"6"},
		"title":       {"Отлично"},
		"content":     {"Быстро ответили"},
	}

	rec := c.post("/reviews", form)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Оценка должна быть от 1 до 5")
	assert.Zero(t, count(t, &model.Review{}))

	form.Set("rating", "3")
	rec = c.post("/reviews", form)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = c.get("/reviews")
	assert.Contains(t, rec.Body.String(), "ПЕТРОВ")
	assert.Contains(t, rec.Body.String(), "3/5")
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.get("/admin/news")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login?next="+url.QueryEscape("/admin/news"), rec.Header().Get("Location"))

	rec = c.get("/documents")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/admin/login?next="))
}

func TestLoginFlow(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.post("/admin/login", url.Values{"username": {"chief"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Неверные учетные данные")

	rec = c.post("/admin/login", url.Values{
		"username": {"  chief "},
		"password": {"chief-pass"},
		"next":     {"/admin/news"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/news", rec.Header().Get("Location"))

	rec = c.get("/admin/news")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Вы успешно вошли")

	assert.Equal(t, http.StatusOK, c.get("/admin").Code)

	rec = c.post("/admin/logout", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, http.StatusFound, c.get("/admin").Code)
}

func TestLoginIgnoresForeignNext(t *testing.T) {
	c := newClient(t, newTestServer(t))

	rec := c.post("/admin/login", url.Values{
		"username": {"chief"},
		"password": {"chief-pass"},
		"next":     {"//evil.example/"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestStaffCannotManageUsers(t *testing.T) {
	engine := newTestServer(t)
	createStaff(t, "ivanov")
	c := newClient(t, engine)
	c.login("ivanov", "ivanov-pass")

	assert.Equal(t, http.StatusOK, c.get("/admin").Code)
	assert.Equal(t, http.StatusForbidden, c.get("/admin/users").Code)
	assert.Equal(t, http.StatusForbidden, c.get("/admin/logs").Code)
	assert.Equal(t, http.StatusForbidden, c.post("/admin/users/new", url.Values{
		"username": {"intruder"},
		"password": {"x"},
	}).Code)
}

func TestAdminPagesServeHTMLOnly(t *testing.T) {
	c := newClient(t, newTestServer(t))
	c.login("chief", "chief-pass")

	rec := c.get("/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = c.get("/admin/status")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestDeletingBootstrapAdminIsRefused(t *testing.T) {
	c := newClient(t, newTestServer(t))
	c.login("chief", "chief-pass")

	chief, err := (&service.UserService{}).GetUserByUsername("chief")
	require.NoError(t, err)

	rec := c.post("/admin/users/"+strconv.Itoa(chief.Id)+"/delete", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	rec = c.get("/admin/users")
	assert.Contains(t, rec.Body.String(), "Нельзя переименовать, понизить или удалить базового администратора")
	assert.EqualValues(t, 1, count(t, &model.AdminUser{}))
}

func TestDocumentApprovalFlow(t *testing.T) {
	engine := newTestServer(t)
	createStaff(t, "ivanov")

	staff := newClient(t, engine)
	staff.login("ivanov", "ivanov-pass")
	rec := staff.post("/documents", url.Values{
		"title":         {"Рапорт о происшествии"},
		"document_type": {"Рапорт"},
		"content":       {"Текст рапорта"},
	})
	require.Equal(t, http.StatusFound, rec.Code)

	var doc model.Document
	require.NoError(t, database.GetDB().First(&doc).Error)
	assert.Equal(t, model.Pending, doc.Status)

	assert.Equal(t, http.StatusForbidden, staff.post("/admin/documents/"+strconv.Itoa(doc.Id)+"/approve", url.Values{}).Code)

	admin := newClient(t, engine)
	admin.login("chief", "chief-pass")
	assert.Equal(t, http.StatusOK, admin.get("/admin/documents/"+strconv.Itoa(doc.Id)).Code)

	rec = admin.post("/admin/documents/"+strconv.Itoa(doc.Id)+"/approve", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	require.NoError(t, database.GetDB().First(&doc, doc.Id).Error)
	assert.Equal(t, model.Approved, doc.Status)
	assert.NotNil(t, doc.ApprovedById)
	assert.NotNil(t, doc.ApprovedAt)

	rec = admin.post("/admin/documents/"+strconv.Itoa(doc.Id)+"/reject", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)
	rec = admin.get("/admin/documents/" + strconv.Itoa(doc.Id))
	assert.Contains(t, rec.Body.String(), "Решение по этой записи уже принято")

	rec = staff.get("/documents")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Рапорт о происшествии")
}

func TestJobApplicationBecomesAccount(t *testing.T) {
	engine := newTestServer(t)
	visitor := newClient(t, engine)

	rec := visitor.post("/job-application", url.Values{
		"full_name":        {"Смирнов Алексей"},
		"desired_username": {"newuser123"},
		"desired_password": {"pw"},
		"question1":        {"Хочу служить"},
		"question2":        {"Три года"},
		"question3":        {"Нет"},
	})
	require.Equal(t, http.StatusFound, rec.Code)

	rec = visitor.post("/track-application", url.Values{"username": {"newuser123"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "На рассмотрении")

	var app model.JobApplication
	require.NoError(t, database.GetDB().First(&app).Error)

	admin := newClient(t, engine)
	admin.login("chief", "chief-pass")
	rec = admin.post("/admin/job-applications/"+strconv.Itoa(app.Id)+"/approve", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)

	newcomer := newClient(t, engine)
	newcomer.login("newuser123", "pw")
	assert.Equal(t, http.StatusOK, newcomer.get("/documents").Code)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	engine := newTestServer(t)
	visitor := newClient(t, engine)
	for i := 0; i < 2; i++ {
		visitor.post("/feedback", url.Values{"full_name": {"Иванов"}, "message": {"текст"}})
	}

	admin := newClient(t, engine)
	admin.login("chief", "chief-pass")
	rec := admin.post("/admin/notifications/read-all", url.Values{})
	require.Equal(t, http.StatusFound, rec.Code)

	unread, err := (&service.NotificationService{}).UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, unread)
}
