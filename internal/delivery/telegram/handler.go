package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chenders/deadonfilm/internal/domain"
	"github.com/chenders/deadonfilm/internal/usecase"
	"github.com/chenders/deadonfilm/pkg/prometheus"
)

const (
	StepFirstActor        = "first_actor"
	StepFirstActorSelect  = "first_actor_select"
	StepSecondActor       = "second_actor"
	StepSecondActorSelect = "second_actor_select"
	StepCompleted         = "completed"
	correlationIDKey      = "correlation_id"
	chatIDKey             = "chat_id"
	commandKey            = "command"
	errorKey              = "error"
	successKey            = "success"
	queryKey              = "query"
	delay                 = time.Millisecond * 100
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery.Message.Chat.ID, update.CallbackQuery.Data,
			update.CallbackQuery.ID, update.CallbackQuery.Message.MessageID)

	case update.Message == nil:
		return

	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message.Chat.ID, update.Message.Command(),
			update.Message.CommandArguments())

	default:
		b.HandleSearchByTwoActors(ctx, update.Message.Chat.ID,
			strings.TrimSpace(update.Message.Text))
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string, query string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))

	b.log.Info(
		"Команда получена", chatIDKey, chatID, commandKey, command, queryKey, query,
		correlationIDKey, ctx.Value(correlationIDKey))

	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	default:
		status = errorKey
		b.handleUnknown(ctx, chatID)
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	state := b.GetStateByID(ctx, chatID)
	*state = domain.SessionState{
		CorrelationID: state.CorrelationID,
		Step:          StepFirstActor,
	}
	err := b.SetState(ctx, chatID, state)
	if err != nil {
		b.log.Error(
			"Ошибка задания шага",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
	}
	prometheus.ActiveUsers.Inc()
	b.SendMessage(ctx, chatID, "Введите имя первого актера")
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	b.SendMessage(ctx, chatID, "Бот ищет цепочку знакомств между двумя актерами: кто с кем "+
		"снимался, вплоть до шести рукопожатий.\nДля начала поиска нажмите /start")
}

func (b *Bot) handleUnknown(ctx context.Context, chatID int64) {
	b.SendMessage(ctx, chatID, "Неизвестная команда.\nВведите /start для нового поиска")
}

func (b *Bot) HandleSearchByTwoActors(ctx context.Context, chatID int64, query string) {
	state := b.GetStateByID(ctx, chatID)
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(state.Step).Observe(time.Since(startTime).
			Seconds())
	}()
	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues("search", status).Inc()
	}()

	switch state.Step {
	case StepFirstActor, StepSecondActor:
		err := b.handleActor(ctx, chatID, query)
		if err != nil {
			status = errorKey
			b.log.Error(
				"Ошибка обработки поиска актера",
				chatIDKey, chatID,
				queryKey, query,
				correlationIDKey, ctx.Value(correlationIDKey),
				errorKey, err)
			b.ResetUserState(ctx, chatID)
			b.SendMessage(ctx, chatID, "Произошла ошибка поиска. Введите /start для нового поиска")
			return
		}
		b.log.Info(
			"Актеры успешно отправлены на выбор",
			chatIDKey, chatID,
			queryKey, query,
			correlationIDKey, ctx.Value(correlationIDKey),
		)
	default:
		b.SendMessage(ctx, chatID, "Введите /start для нового поиска")
		b.log.Debug(
			"Ошибка шага",
			chatIDKey, chatID,
			"state.Step", state.Step,
			queryKey, query,
			correlationIDKey, ctx.Value(correlationIDKey),
		)
	}
}

func (b *Bot) handleActor(ctx context.Context, chatID int64, query string) error {
	const op = "BotHandler.handleActor"

	state := b.GetStateByID(ctx, chatID)

	actors, err := b.SearchActor(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: Ошибка поиска актера %s: %w", op, query, err)
	}

	if len(actors) == 0 {
		b.log.Info("Актеры не найдены", chatIDKey, chatID, queryKey, query, correlationIDKey,
			ctx.Value(correlationIDKey))
		return fmt.Errorf("%s: Актеры по запросу \"%s\" не найдены", op, query)
	}

	state.PendingActors = b.createPhotoData(actors)

	if state.Step == StepFirstActor {
		state.Step = StepFirstActorSelect
	} else if state.Step == StepSecondActor {
		state.Step = StepSecondActorSelect
	} else {
		state.Step = StepCompleted
	}

	b.log.Debug("Подготовлены к отправке на выбор:",
		"state.PendingActors", state.PendingActors,
		chatIDKey, chatID,
		correlationIDKey, ctx.Value(correlationIDKey),
	)

	err = b.sendActors(ctx, chatID, state.PendingActors)
	if err != nil {
		return fmt.Errorf("%s: Ошибка отправки актеров на выбор %s: %w", op, query, err)
	}

	return nil
}

func (b *Bot) sendActors(ctx context.Context, chatID int64, actors []domain.PhotoData) error {
	const op = "BotHandler.sendActors"

	b.SendMessage(ctx, chatID, "Найдены")

	for _, photo := range actors {
		if _, err := b.SendActorWithPhoto(ctx, chatID, photo); err != nil {
			return fmt.Errorf("%s: ошибка отправки фото в чат %d: %v", op, chatID, err)
		}
		time.Sleep(delay)
	}

	return nil
}

func (b *Bot) SendActorWithPhoto(ctx context.Context, chatID int64,
	photo domain.PhotoData) (int, error) {
	data := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photo.PhotoURL))
	data.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Ссылка", photo.ActorURL),
			tgbotapi.NewInlineKeyboardButtonData("Выбрать",
				strconv.Itoa(photo.ID)),
		),
	)
	data.Caption = photo.Caption
	sentMsg, err := b.Send(data)
	if err != nil {
		return 0, err
	}
	prometheus.MessagesSent.WithLabelValues("photo").Inc()
	state := b.GetStateByID(ctx, chatID)
	state.SentMediaMessages = append(state.SentMediaMessages, sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

func (b *Bot) handleActorSelection(ctx context.Context, chatID int64, actorID int) {
	state := b.GetStateByID(ctx, chatID)
	if err := b.ClearPreviousMedia(ctx, chatID); err != nil {
		b.log.Error("Ошибка очистки медиа", chatIDKey, chatID, correlationIDKey,
			ctx.Value(correlationIDKey), errorKey, err)
	}

	switch state.Step {
	case StepFirstActorSelect:
		state.FirstActorID = actorID
		state.Step = StepSecondActor
		b.SendMessage(ctx, chatID, "Введите имя второго актера:")

	case StepSecondActorSelect:
		state.SecondActorID = actorID
		state.Step = StepCompleted
		err := b.handleConnection(ctx, chatID, state)
		if err != nil {
			b.SendMessage(ctx, chatID, "Произошла ошибка поиска. Введите /start для нового поиска")
			b.log.Error("Ошибка поиска цепочки", chatIDKey, chatID,
				correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		}
	default:
		b.SendMessage(ctx, chatID, "Неверный выбор. Введите /start")
	}
}

func (b *Bot) handleCallback(ctx context.Context, chatID int64, data string, callbackID string,
	callbackMessageID int) {
	actorID, err := strconv.Atoi(data)
	if err != nil {
		b.log.Error(
			"Ошибка конвертации ID актера",
			chatIDKey, chatID,
			correlationIDKey, ctx.Value(correlationIDKey),
			errorKey, err)
		b.SendMessage(ctx, chatID, "Произошла ошибка поиска. Введите /start для нового поиска")
		b.ResetUserState(ctx, chatID)
		return
	}
	ctx = context.WithValue(ctx, correlationIDKey, b.GetCorrelationID(ctx, chatID))
	b.log.Info("Выбран актер", "actorID", actorID, chatIDKey, chatID, correlationIDKey,
		ctx.Value(correlationIDKey))

	if err := b.AnswerCallbackQuery(callbackID, ""); err != nil {
		b.log.Debug("Ошибка ответа на callback", chatIDKey, chatID, errorKey, err)
	}

	editMsg := tgbotapi.NewEditMessageReplyMarkup(
		chatID,
		callbackMessageID,
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Ссылка", personURL(actorID)),
			),
		),
	)
	b.Send(editMsg)

	b.handleActorSelection(ctx, chatID, actorID)
}

func (b *Bot) handleConnection(ctx context.Context, chatID int64, state *domain.SessionState) error {
	const op = "BotHandler.handleConnection"

	defer prometheus.ActiveUsers.Dec()
	defer b.ResetUserState(ctx, chatID)

	b.SendMessage(ctx, chatID, "Ищу цепочку знакомств, это может занять около минуты...")

	searchCtx, cancel := context.WithTimeout(ctx, b.searchTimeout)
	defer cancel()

	result, err := b.FindConnection(searchCtx, state.FirstActorID, state.SecondActorID,
		usecase.DefaultMaxDegrees)
	switch {
	case errors.Is(err, domain.ErrNoConnection):
		b.SendMessage(ctx, chatID, fmt.Sprintf(
			"Не нашел связь в пределах %d рукопожатий.\nВведите /start для нового поиска",
			usecase.DefaultMaxDegrees))
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		b.SendMessage(ctx, chatID,
			"Поиск занял слишком много времени.\nПопробуйте других актеров: /start")
		return nil
	case err != nil:
		return fmt.Errorf("%s: %w", op, err)
	}

	prometheus.SearchDegrees.Observe(float64(result.Degrees))
	b.log.Info("Связь найдена",
		chatIDKey, chatID,
		"degrees", result.Degrees,
		"deceased", result.TotalDeceased,
		correlationIDKey, ctx.Value(correlationIDKey))

	return b.sendConnection(ctx, chatID, result)
}

func (b *Bot) sendConnection(ctx context.Context, chatID int64, result domain.ConnectionResult) error {
	if err := b.SendMessage(ctx, chatID, connectionCaption(result)); err != nil {
		return err
	}

	for _, segment := range result.Path {
		if segment.Movie == nil {
			continue
		}
		movie, err := b.GetMovieByID(ctx, segment.Movie.ID)
		if err != nil {
			b.log.WarnContext(ctx, "Не удалось получить карточку фильма",
				"movieID", segment.Movie.ID, errorKey, err)
			continue
		}
		if movie.PosterURL == "" {
			continue
		}
		if err := b.SendMovie(ctx, chatID, movie); err != nil {
			b.log.WarnContext(ctx, "Ошибка отправки фильма", "movieID", movie.ID, errorKey, err)
		}
		time.Sleep(delay)
	}
	return nil
}

// connectionCaption renders a found chain as one text message: the degree
// count, the actor chain with the movie linking each neighboring pair, and a
// closing block about the deceased.
func connectionCaption(result domain.ConnectionResult) string {
	var sb strings.Builder

	if result.Degrees == 0 {
		sb.WriteString("Это один и тот же актер!\n")
	} else {
		fmt.Fprintf(&sb, "Нашел связь за %d %s!\n\n", result.Degrees,
			pluralize(result.Degrees, "рукопожатие", "рукопожатия", "рукопожатий"))
		for _, segment := range result.Path {
			sb.WriteString(segment.Actor.Name)
			if segment.Actor.Deceased {
				sb.WriteString(" ✝")
			}
			sb.WriteByte('\n')
			if segment.Movie != nil {
				fmt.Fprintf(&sb, "   ↓ %s\n", movieLine(*segment.Movie))
			}
		}
	}

	if result.TotalDeceased > 0 {
		fmt.Fprintf(&sb, "\nУмерших в цепочке: %d\n", result.TotalDeceased)
		for _, record := range result.DeceasedOnPath {
			sb.WriteString(deceasedLine(record))
			sb.WriteByte('\n')
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func movieLine(movie domain.Movie) string {
	if movie.Year > 0 {
		return fmt.Sprintf("«%s» (%d)", movie.Title, movie.Year)
	}
	return fmt.Sprintf("«%s»", movie.Title)
}

func deceasedLine(record domain.DeceasedRecord) string {
	var sb strings.Builder
	sb.WriteString("💀 ")
	sb.WriteString(record.Name)
	if record.DeathDate != "" {
		sb.WriteString(", ум. ")
		sb.WriteString(record.DeathDate)
	}
	details := make([]string, 0, 2)
	if record.CauseOfDeath != "" {
		details = append(details, record.CauseOfDeath)
	}
	if record.AgeAtDeath > 0 {
		details = append(details, fmt.Sprintf("%d %s", record.AgeAtDeath,
			pluralize(record.AgeAtDeath, "год", "года", "лет")))
	}
	if len(details) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(details, ", "))
	}
	return sb.String()
}

// pluralize picks the Russian plural form for n.
func pluralize(n int, one, few, many string) string {
	if n%100 >= 11 && n%100 <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

func (b *Bot) createPhotoData(actors []domain.Actor) []domain.PhotoData {
	if len(actors) == 0 {
		return nil
	}

	response := make([]domain.PhotoData, 0, len(actors))
	for _, actor := range actors {
		photo := domain.PhotoData{
			ID:       actor.ID,
			PhotoURL: actor.PhotoURL,
			ActorURL: personURL(actor.ID),
			Caption:  actor.Name,
		}
		response = append(response, photo)
	}
	return response
}

func (b *Bot) SendMovie(ctx context.Context, chatID int64, movie domain.Movie) error {
	data := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(movie.PosterURL))
	data.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Ссылка", movieURL(movie.ID)),
		),
	)
	caption := movieLine(movie)
	if movie.Rating > 0 {
		caption = fmt.Sprintf("%s, Рейтинг: %.1f", caption, movie.Rating)
	}
	data.Caption = caption
	if _, err := b.Send(data); err != nil {
		return err
	}
	prometheus.MessagesSent.WithLabelValues("photo").Inc()
	return nil
}

func personURL(actorID int) string {
	return fmt.Sprintf("https://www.themoviedb.org/person/%d", actorID)
}

func movieURL(movieID int) string {
	return fmt.Sprintf("https://www.themoviedb.org/movie/%d", movieID)
}
