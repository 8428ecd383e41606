package handlers

import (
	"sort"
	"strings"
	"testing"

	"offerbase/internal/model"
	"offerbase/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeBotAPI struct {
	messages  []sentMessage
	documents []string
	menus     map[int64]int
}

func newFakeBotAPI() *fakeBotAPI {
	return &fakeBotAPI{menus: make(map[int64]int)}
}

func (f *fakeBotAPI) SendMessage(chatID int64, text string) error {
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeBotAPI) SendDocument(chatID int64, filename string, data []byte, caption string) error {
	f.documents = append(f.documents, filename)
	return nil
}

func (f *fakeBotAPI) SetCommandsForChat(chatID int64, commands []tgbotapi.BotCommand) error {
	f.menus[chatID] = len(commands)
	return nil
}

func (f *fakeBotAPI) Username() string {
	return "offerbase_bot"
}

// textsFor возвращает тексты, отправленные в чат
func (f *fakeBotAPI) textsFor(chatID int64) []string {
	var texts []string
	for _, m := range f.messages {
		if m.chatID == chatID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

type fakeOfferRepository struct {
	offers map[int64]model.Offer
	nextID int64
}

func newFakeOfferRepository() *fakeOfferRepository {
	return &fakeOfferRepository{offers: make(map[int64]model.Offer), nextID: 1}
}

func (f *fakeOfferRepository) Create(offer *model.Offer) error {
	offer.ID = f.nextID
	f.nextID++
	f.offers[offer.ID] = *offer
	return nil
}

func (f *fakeOfferRepository) GetByID(id int64) (*model.Offer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, nil
	}
	return &offer, nil
}

func (f *fakeOfferRepository) UpdateFields(id int64, fields model.OfferFields) (bool, error) {
	offer, ok := f.offers[id]
	if !ok {
		return false, nil
	}
	offer.SourceName = fields.SourceName
	offer.OfferName = fields.OfferName
	offer.Geo = fields.Geo
	offer.Rate = fields.Rate
	offer.Guarantee = fields.Guarantee
	offer.Note = fields.Note
	f.offers[id] = offer
	return true, nil
}

func (f *fakeOfferRepository) Archive(id int64) (*model.Offer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, nil
	}
	snapshot := offer
	offer.Status = model.StatusArchived
	f.offers[id] = offer
	return &snapshot, nil
}

func (f *fakeOfferRepository) Search(filter model.OfferFilter) ([]model.Offer, error) {
	var ids []int64
	for id := range f.offers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var result []model.Offer
	for _, id := range ids {
		offer := f.offers[id]
		if !filter.IncludeArchived && offer.IsArchived() {
			continue
		}
		if filter.OwnerID != 0 && offer.OwnerID != filter.OwnerID {
			continue
		}
		if !matchesKeywords(&offer, filter.Keywords) {
			continue
		}
		result = append(result, offer)
	}
	return result, nil
}

func (f *fakeOfferRepository) SearchWithOwners(filter model.OfferFilter) ([]model.OfferExportRow, error) {
	offers, err := f.Search(filter)
	if err != nil {
		return nil, err
	}
	rows := make([]model.OfferExportRow, 0, len(offers))
	for _, offer := range offers {
		rows = append(rows, model.OfferExportRow{Offer: offer})
	}
	return rows, nil
}

func matchesKeywords(offer *model.Offer, keywords [][]string) bool {
	haystack := strings.ToLower(offer.SourceName + " " + offer.OfferName + " " + offer.Geo)
	for _, variants := range keywords {
		matched := false
		for _, variant := range variants {
			if strings.Contains(haystack, strings.ToLower(variant)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

type fakeUserRepository struct {
	users map[int64]model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]model.User)}
}

func (f *fakeUserRepository) GetByID(id int64) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepository) Register(user *model.User) error {
	if _, ok := f.users[user.UserID]; !ok {
		f.users[user.UserID] = *user
	}
	return nil
}

func (f *fakeUserRepository) SetRole(id int64, role model.Role) error {
	user, ok := f.users[id]
	if !ok {
		user = model.User{UserID: id}
	}
	user.Role = role
	f.users[id] = user
	return nil
}

func (f *fakeUserRepository) GetAll() ([]model.User, error) {
	var users []model.User
	for _, u := range f.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

type fakeInviteRepository struct {
	invites map[string]model.Invite
}

func newFakeInviteRepository() *fakeInviteRepository {
	return &fakeInviteRepository{invites: make(map[string]model.Invite)}
}

func (f *fakeInviteRepository) Create(invite *model.Invite) error {
	f.invites[invite.Code] = *invite
	return nil
}

func (f *fakeInviteRepository) Redeem(code string) (model.Role, error) {
	invite, ok := f.invites[code]
	if !ok || invite.UsesLeft < 1 {
		return "", model.ErrInviteInvalid
	}
	invite.UsesLeft--
	if invite.UsesLeft == 0 {
		delete(f.invites, code)
	} else {
		f.invites[code] = invite
	}
	return invite.Role, nil
}

type fakeSettingRepository struct {
	values map[string]string
}

func newFakeSettingRepository() *fakeSettingRepository {
	return &fakeSettingRepository{values: map[string]string{model.SettingLogChatID: "0"}}
}

func (f *fakeSettingRepository) GetAll() ([]model.Setting, error) {
	var settings []model.Setting
	for k, v := range f.values {
		settings = append(settings, model.Setting{Key: k, Value: v})
	}
	return settings, nil
}

func (f *fakeSettingRepository) Set(key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingRepository) SeedDefaults(defaults map[string]string) error {
	for k, v := range defaults {
		if _, ok := f.values[k]; !ok {
			f.values[k] = v
		}
	}
	return nil
}

type testEnv struct {
	handler  *Handler
	botAPI   *fakeBotAPI
	offers   *fakeOfferRepository
	users    *fakeUserRepository
	settings *fakeSettingRepository
}

const testSuperadminID int64 = 1

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	offers := newFakeOfferRepository()
	users := newFakeUserRepository()
	settings := newFakeSettingRepository()

	services := &service.Services{
		Offer:    service.NewOfferService(offers, logger),
		User:     service.NewUserService(users, testSuperadminID, logger),
		Invite:   service.NewInviteService(newFakeInviteRepository(), logger),
		Settings: service.NewSettingsService(settings, logger),
	}
	require.NoError(t, services.Settings.Reload())

	botAPI := newFakeBotAPI()
	return &testEnv{
		handler:  NewHandler(services, botAPI, logger),
		botAPI:   botAPI,
		offers:   offers,
		users:    users,
		settings: settings,
	}
}

func privateMessage(userID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, FirstName: "Test", UserName: "test_user"},
		Chat: &tgbotapi.Chat{ID: userID, Type: "private"},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		command := strings.Fields(text)[0]
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}}
	}
	return msg
}

func TestHandleAdd_CreatesOffer(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleAdd(privateMessage(10, "/add 1win - Aviator - ro - 45$ - 5 cap - Тест"), model.RoleManager)

	texts := env.botAPI.textsFor(10)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[0], "OK!")
	assert.Contains(t, texts[0], "ID: 1")

	offer, err := env.offers.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, "Romania (Румыния)", offer.Geo, "гео нормализуется при создании")
	assert.Equal(t, int64(10), offer.OwnerID)
	assert.Equal(t, model.StatusActive, offer.Status)
}

func TestHandleAdd_AuditGoesToLogChat(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.handler.services.Settings.SetLogChatID(-100500))

	env.handler.HandleAdd(privateMessage(10, "/add 1win - Aviator - RO - 45$ - 0 - Тест"), model.RoleManager)

	audits := env.botAPI.textsFor(-100500)
	require.Len(t, audits, 1)
	assert.Contains(t, audits[0], "Новый оффер")
}

func TestHandleAdd_BadFormat(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleAdd(privateMessage(10, "/add 1win - Aviator"), model.RoleManager)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Ошибка формата")
	assert.Empty(t, env.offers.offers)
}

func TestHandleAdd_DeniedForUser(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleAdd(privateMessage(10, "/add 1win - Aviator - RO - 45$ - 0 - Тест"), model.RoleUser)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "нет прав")
}

func TestHandleDel_ManagerCannotArchiveForeignOffer(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.offers.Create(&model.Offer{
		SourceName: "1win", OfferName: "Aviator", Geo: "Global", Rate: "45$", Note: "-",
		Status: model.StatusActive, OwnerID: 99,
	}))

	env.handler.HandleDel(privateMessage(10, "/del 1"), model.RoleManager)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "чужие")

	offer, _ := env.offers.GetByID(1)
	assert.Equal(t, model.StatusActive, offer.Status, "оффер не тронут")
}

func TestHandleDel_ArchivesAndConfirms(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.offers.Create(&model.Offer{
		SourceName: "1win", OfferName: "Aviator", Geo: "Global", Rate: "45$", Note: "-",
		Status: model.StatusActive, OwnerID: 10,
	}))

	env.handler.HandleDel(privateMessage(10, "/del 1"), model.RoleManager)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "удален в архив")

	offer, _ := env.offers.GetByID(1)
	assert.Equal(t, model.StatusArchived, offer.Status)
}

func TestHandleCheck_NothingFound(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleCheck(privateMessage(10, "/check aviator"), model.RoleUser, false)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Ничего не найдено")
}

func TestHandleCheck_ManagerSeesOnlyOwnOffers(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.offers.Create(&model.Offer{
		SourceName: "1win", OfferName: "Aviator", Geo: "Global", Rate: "45$", Note: "-",
		Status: model.StatusActive, OwnerID: 10,
	}))
	require.NoError(t, env.offers.Create(&model.Offer{
		SourceName: "PIN", OfferName: "Slots", Geo: "Global", Rate: "30$", Note: "-",
		Status: model.StatusActive, OwnerID: 99,
	}))

	env.handler.HandleCheck(privateMessage(10, "/check -"), model.RoleManager, false)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "1win")
	assert.NotContains(t, texts[0], "PIN")
}

func TestHandleCheck_ViewLimitNotice(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < viewLimit+5; i++ {
		require.NoError(t, env.offers.Create(&model.Offer{
			SourceName: "1win", OfferName: "Aviator", Geo: "Global", Rate: "45$", Note: "-",
			Status: model.StatusActive, OwnerID: 10,
		}))
	}

	env.handler.HandleCheck(privateMessage(10, "/check -"), model.RoleAdmin, false)

	texts := env.botAPI.textsFor(10)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[0], "Найдено: 25")
	// 20 карточек по 5 на сообщение плюс предупреждение
	assert.Len(t, texts, 1+viewLimit/cardsPerMessage)
}

func TestHandleCheck_ArchiveRequiresPermission(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleCheck(privateMessage(10, "/check_archive -"), model.RoleUser, true)

	texts := env.botAPI.textsFor(10)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "администраторам")
}

func TestHandleExport_SendsDocument(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.offers.Create(&model.Offer{
		SourceName: "1win", OfferName: "Aviator", Geo: "Global", Rate: "45$", Note: "-",
		Status: model.StatusActive, OwnerID: 10,
	}))

	env.handler.HandleExport(privateMessage(10, "/export -"), model.RoleUser, false)

	require.Len(t, env.botAPI.documents, 1)
	assert.True(t, strings.HasPrefix(env.botAPI.documents[0], "export_"))
	assert.True(t, strings.HasSuffix(env.botAPI.documents[0], ".xlsx"))
}

func TestHandleInvite_BuildsDeepLinks(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleInvite(privateMessage(1, "/invite manager 3"), model.RoleAdmin)

	texts := env.botAPI.textsFor(1)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Сгенерировано ссылок: 3")
	assert.Equal(t, 3, strings.Count(texts[0], "https://t.me/offerbase_bot?start="))
}

func TestHandleInvite_RejectsUngrantableRole(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleInvite(privateMessage(1, "/invite superadmin"), model.RoleAdmin)

	texts := env.botAPI.textsFor(1)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Роли: manager, user, admin")
}

func TestHandleFire_TogglesBan(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.users.Register(&model.User{UserID: 10, Username: "victim", Role: model.RoleManager}))

	env.handler.HandleFire(privateMessage(1, "/fire 10"), model.RoleSuperadmin)
	user, _ := env.users.GetByID(10)
	assert.Equal(t, model.RoleBanned, user.Role)

	env.handler.HandleFire(privateMessage(1, "/fire 10"), model.RoleSuperadmin)
	user, _ = env.users.GetByID(10)
	assert.Equal(t, model.RoleUser, user.Role, "разбан возвращает роль user")

	// Цель получает уведомление о каждом переходе
	assert.Len(t, env.botAPI.textsFor(10), 2)
}

func TestHandleFire_SuperadminUntouchable(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleFire(privateMessage(1, "/fire 1"), model.RoleSuperadmin)

	texts := env.botAPI.textsFor(1)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Себя нельзя")
}

func TestHandleSetLog_PointsAuditAtCurrentChat(t *testing.T) {
	env := newTestEnv(t)

	env.handler.HandleSetLog(privateMessage(1, "/setlog"), model.RoleSuperadmin)

	assert.Equal(t, int64(1), env.handler.services.Settings.LogChatID())
	texts := env.botAPI.textsFor(1)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Логи будут приходить сюда")
}
