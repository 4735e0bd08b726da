package services

import "errors"

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	// Данные ресурса недоступны ни из одного источника
	ErrDataUnavailable = errors.New("data unavailable")
	// Первое обновление ещё не выполнено
	ErrNotLoaded = errors.New("tournament data has not been loaded yet")

	ErrMatchNotFound       = errors.New("match not found")
	ErrInvalidTeamFilter   = errors.New("team filter does not match any team")
	ErrUnknownResource     = errors.New("unknown resource")
	ErrBackupStoreDisabled = errors.New("backup object store is not configured")
	ErrNothingToPublish    = errors.New("no live payload cached for resource")
	ErrNotCached           = errors.New("resource has no cached payload")
)
