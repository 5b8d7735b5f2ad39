package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, TitleSuccessKey, "Perfeito!")
	message.SetString(lang, TitleWarningKey, "Boa verificação")
	message.SetString(lang, TitleFailKey, "Caiu na isca 😬")
	message.SetString(lang, TitleCorrectKey, "Correto!")
	message.SetString(lang, TitleNopeKey, "Não!")

	message.SetString(lang, LessonsHeaderKey, "Lições principais:")
	message.SetString(lang, StarsLineKey, "Estrelas: %s")
	message.SetString(lang, ActionLineKey, "Sua ação: %s")
	message.SetString(lang, DomainRealKey, "Você escolheu o domínio real: %s")
	message.SetString(lang, DomainFakeKey, "Esse domínio é suspeito.\nO domínio real era: %s")

	message.SetString(lang, TipLevelKey, "Na dúvida: NÃO clique. Acesse o site oficial por conta própria ou ligue para a TI.")
	message.SetString(lang, TipDomainKey, "Procure trocas de letras: rn vs m, 0 vs o, I vs l.")

	message.SetString(lang, SummaryCorrectKey, "Boa escolha. Você reduziu o risco e manteve a calma.")
	message.SetString(lang, SummaryIncorrectKey, "Escolha arriscada. Na vida real, isso poderia expor dados.")
	message.SetString(lang, SummaryTimeoutKey, "O tempo acabou. A pressão causa erros.")

	message.SetString(lang, CheerSharperKey, "Você está ficando mais esperto. É assim que se param golpes.")
	message.SetString(lang, CheerDetailsKey, "Pequenos detalhes importam. Seu cérebro está aprendendo o padrão.")
	message.SetString(lang, CheerSmoothKey, "Devagar é suave. Suave é seguro.")
	message.SetString(lang, CheerInstinctKey, "Você está construindo instintos reais de segurança.")

	message.SetString(lang, NotifSystemTitleKey, "Sistema")
	message.SetString(lang, NotifSystemTextKey, "Atualização em segundo plano…")
	message.SetString(lang, NotifChatTitleKey, "Chat")
	message.SetString(lang, NotifChatTextKey, "Amigo: “Clica rápido!” (não escute)")
	message.SetString(lang, NotifReminderTitleKey, "Lembrete")
	message.SetString(lang, NotifReminderTextKey, "Respire. Confira o domínio.")
}
