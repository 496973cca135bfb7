package flows

// User-facing texts. The bot speaks Russian only.
const (
	MenuContact = "📞 Связаться с нами"
	MenuHelp    = "📋 Помощь со справкой"

	TextWelcome = "👋 Добро пожаловать! Чем я могу помочь?"

	TextContactPrompt = "✏️ Напишите сообщение, и мы свяжемся с вами."
	TextContactSent   = "✅ Ваше сообщение отправлено!"

	TextHelpAskName   = "✏️ Введите, пожалуйста, ваше имя:"
	TextHelpNameEmpty = "⚠️ Имя не может быть пустым. Введите, пожалуйста, ваше имя:"
	TextHelpAskPhone  = "✏️ Введите, пожалуйста, ваш номер телефона в формате +7XXXXXXXXXX или 8XXXXXXXXXX:"
	TextHelpBadPhone  = "⚠️ Неверный формат номера. Введите номер в формате +7XXXXXXXXXX или 8XXXXXXXXXX:"
	TextHelpAskText   = "✏️ Опишите, какая справка вам нужна:"
	TextHelpSent      = "✅ Ваш запрос отправлен! Мы свяжемся с вами."

	TextCancelled = "❌ Отменено."

	TextAdminOnly     = "❌ Только администратор может отвечать."
	TextReplyPrompt   = "✏️ Введите сообщение для отправки пользователю."
	TextReplyNoTarget = "⚠️ Ошибка: не выбран пользователь для ответа."
	TextReplySent     = "✅ Ответ отправлен пользователю."

	// Used when the admin presses a second reply button before finishing
	// the first reply, so the prompt says who the reply now targets.
	TextReplyRetargetFmt   = "✏️ Введите сообщение для отправки пользователю (ID: %d)."
	TextReplySendFailedFmt = "❌ Ошибка при отправке: %v"
)
