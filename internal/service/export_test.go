package service

// NextCodigoForTest exposes the cotización code sequencer to the tests.
var NextCodigoForTest = nextCodigo
