package assistant

import "errors"

// errTranslateEmpty marks a retry attempt where regeneration itself
// produced nothing; it consumes the attempt like any other failure.
var errTranslateEmpty = errors.New("translation produced no plan text")
