package cli

// Export internal functions for testing.

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ClampParallel exports clampParallel for testing.
var ClampParallel = clampParallel

// ParsePair exports parsePair for testing.
var ParsePair = parsePair

// ParseSymbols exports parseSymbols for testing.
var ParseSymbols = parseSymbols

// ParseTime exports parseTime for testing.
var ParseTime = parseTime

// ParseCalculation exports parseCalculation for testing.
var ParseCalculation = parseCalculation

// PriceLines exports priceLines for testing.
var PriceLines = priceLines

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic

// NewLogger exports newLogger for testing.
var NewLogger = newLogger
