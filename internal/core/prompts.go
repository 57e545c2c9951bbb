package core

// prompts.go holds the bilingual strings used by the intake flow: the
// directive sent to the model, the scripted questions and the small pieces of
// UI copy that depend on the session language.

const (
	// DirectiveEnglish instructs the model to act as MediBot and answer in
	// English.
	DirectiveEnglish = "You are MediBot, a virtual doctor specializing in diagnosing patients and prescribing medicine available in Pakistan. " +
		"Please communicate in English and ask one question at a time."

	// DirectiveUrdu is the Urdu counterpart of DirectiveEnglish.
	DirectiveUrdu = "آپ میڈی بوٹ ہیں، ایک ورچوئل ڈاکٹر جو مریضوں کی تشخیص اور پاکستان میں دستیاب ادویات تجویز کرنے میں مہارت رکھتے ہیں۔ " +
		"براہ کرم اردو میں بات چیت کریں اور ایک وقت میں ایک سوال پوچھیں۔"
)

// QuestionsEnglish is the default English intake script.
var QuestionsEnglish = []string{
	"Hello! I'm MediBot. Let's begin with some basic information. What's your name?",
	"Could you please tell me your age?",
	"What is your gender?",
	"What is your weight in kilograms?",
	"Can you describe the medical issues you are facing?",
}

// QuestionsUrdu is the default Urdu intake script. It must stay the same
// length as QuestionsEnglish.
var QuestionsUrdu = []string{
	"ہیلو! میں میڈی بوٹ ہوں۔ آئیے کچھ بنیادی معلومات سے آغاز کرتے ہیں۔ آپ کا نام کیا ہے؟",
	"براہ کرم آپ کی عمر بتائیں؟",
	"آپ کا جنس کیا ہے؟",
	"آپ کا وزن کلوگرام میں کیا ہے؟",
	"آپ کو درپیش طبی مسائل کی وضاحت کر سکتے ہیں؟",
}

// FailureMessage is shown in place of the model's reply when generation
// fails. The user's answer is kept, so resubmitting retries the call.
func FailureMessage(lang Language) string {
	if lang == Urdu {
		return "معذرت، میڈی بوٹ اس وقت جواب نہیں دے سکا۔ براہ کرم اپنا پیغام دوبارہ بھیجیں۔"
	}
	return "Sorry, MediBot could not answer right now. Please send your message again."
}

// UserPrefix and AssistantPrefix label history lines in the sidebar.
func UserPrefix(lang Language) string {
	if lang == Urdu {
		return "صارف:"
	}
	return "User:"
}

func AssistantPrefix(lang Language) string {
	if lang == Urdu {
		return "میڈی بوٹ:"
	}
	return "MediBot:"
}
