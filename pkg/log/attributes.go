package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "Perceptron".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one classifier instance across log records.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed ("fit", "predict", ...).
	OperationKey = "ml.operation"

	// ComponentKey names the package or command emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase ("training", "inference").
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// DataPathKey is the dataset or model file being read or written.
	DataPathKey = "data.path"
)

// Training progress and results.
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	PrecisionKey  = "metrics.precision"
	RecallKey     = "metrics.recall"
	F1Key         = "metrics.f1"

	// MisclassifiedKey is the number of wrong predictions in one epoch or
	// evaluation pass.
	MisclassifiedKey = "metrics.misclassified"

	IterationKey = "training.iteration"
	EpochKey     = "training.epoch"

	// ConvergedKey reports whether training stopped on a clean epoch.
	ConvergedKey = "training.converged"
)

// Prediction output.
const (
	PredsKey = "preds.count"
)

// Error context.
const (
	ErrorCodeKey   = "error.code"
	ErrorTypeKey   = "error.type"
	ErrorDetailKey = "error.detail"
	StacktraceKey  = "error.stacktrace"
)

// Hyperparameters.
const (
	LearningRateKey  = "hyperparams.learning_rate"
	MaxIterationsKey = "hyperparams.max_iterations"
	RandomSeedKey    = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationExport  = "export"
	OperationImport  = "import"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted    = "NOT_FITTED"
	ErrorInvalidInput = "INVALID_INPUT"
	ErrorConvergence  = "CONVERGENCE_FAILURE"
)
