package auth

// User-facing replies.
const (
	TextEnterPassword     = "Введите пароль:"
	TextAccessGranted     = "Доступ разрешён."
	TextInvalidPassword   = "Неверный пароль."
	TextSessionEnded      = "Сессия завершена. Введите пароль:"
	TextLoggedOut         = "Вы вышли. Введите пароль."
	TextLockedDown        = "Система заблокирована. Введите аварийный код."
	TextUseMenu           = "Выберите действие в меню."
	TextDatabaseSection   = "Раздел 'База данных':"
	TextSettingsSection   = "Настройки:"
	TextSendFiles         = "Отправьте файлы. Когда закончите — напишите 'готово'."
	TextUploadComplete    = "Загрузка завершена."
	TextUnsupportedFile   = "Неподдерживаемый тип файла."
	TextDocumentSaved     = "Файл %s сохранён."
	TextPhotoSaved        = "Фото сохранено."
	TextAudioSaved        = "Аудио сохранено."
	TextUploadFailed      = "Не удалось сохранить файл %s."
	TextDownloadFailed    = "Не удалось получить файл из Telegram."
	TextNoFiles           = "Файлы не найдены."
	TextFileListHeader    = "Список файлов:"
	TextFileListFooter    = "Чтобы удалить — напишите номер."
	TextStorageDown       = "Хранилище недоступно. Попробуйте позже."
	TextFileDeleted       = "Файл '%s' удалён."
	TextDeleteFailed      = "Не удалось удалить файл '%s'."
	TextInvalidNumber     = "Ошибка. Укажите корректный номер файла."
	TextLogsHeader        = "Логи:\n"
	TextLogsEmpty         = "Логи пусты."
	TextLogsUnavailable   = "Не удалось прочитать логи."
	TextPasswordImmutable = "Смена пароля недоступна: пароль задаётся конфигурацией."
)

// Activity log messages.
const (
	logLoginOK        = "Успешный вход"
	logLoginFailed    = "Неверный пароль"
	logAutoLock       = "Автоблокировка"
	logLogout         = "Ручной выход"
	logLockdown       = "Аварийная блокировка"
	logUploadDone     = "Закончил загрузку файлов (%d)"
	logUploadedFile   = "Загрузил файл: %s"
	logUploadedPhoto  = "Загрузил фото: %s"
	logUploadedAudio  = "Загрузил аудио: %s"
	logUploadFailed   = "Ошибка сохранения файла %s: %v"
	logDownloadFailed = "Ошибка получения файла %s: %v"
	logUnsupported    = "Неподдерживаемый тип файла"
	logListFailed     = "Ошибка получения списка файлов: %v"
	logDeleted        = "Удалил файл %s"
	logDeleteFailed   = "Ошибка удаления файла %s: %v"
	logBadSelection   = "Неверный номер файла %q (%s)"
)

var doneKeywords = []string{"готово", "done"}
