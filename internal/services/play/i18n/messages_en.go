package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, TitleSuccessKey, "Perfect!")
	message.SetString(lang, TitleWarningKey, "Nice check")
	message.SetString(lang, TitleFailKey, "Got baited 😬")
	message.SetString(lang, TitleCorrectKey, "Correct!")
	message.SetString(lang, TitleNopeKey, "Nope!")

	message.SetString(lang, LessonsHeaderKey, "Key lessons:")
	message.SetString(lang, StarsLineKey, "Stars: %s")
	message.SetString(lang, ActionLineKey, "Your action: %s")
	message.SetString(lang, DomainRealKey, "You chose the real domain: %s")
	message.SetString(lang, DomainFakeKey, "That domain is suspicious.\nReal domain was: %s")

	for _, key := range []string{
		TipLevelKey, TipDomainKey,
		SummaryCorrectKey, SummaryIncorrectKey, SummaryTimeoutKey,
		CheerSharperKey, CheerDetailsKey, CheerSmoothKey, CheerInstinctKey,
		NotifSystemTitleKey, NotifSystemTextKey,
		NotifChatTitleKey, NotifChatTextKey,
		NotifReminderTitleKey, NotifReminderTextKey,
	} {
		message.SetString(lang, key, key)
	}
}
