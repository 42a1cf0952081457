package domain

import "errors"

var (
	ErrUnknownInsurer        = errors.New("branch master has no entries for insurer")
	ErrUnknownVariant        = errors.New("unknown insurer variant")
	ErrNoInputFiles          = errors.New("either input files or an input directory must be given")
	ErrConflictingInputs     = errors.New("only one of input files or input directory can be given")
	ErrInvalidProcessingDate = errors.New("processing date must be in mm/dd/yyyy format")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrRunNotFound           = errors.New("extraction run not found")
	ErrPersistenceDisabled   = errors.New("run persistence is disabled")
	ErrUploadFailed          = errors.New("report upload to storage failed")
)
