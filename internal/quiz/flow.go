// internal/quiz/flow.go
package quiz

// 出題モード以外の段階名
const (
	StepFlashcard = "flashcard"
	StepMatching  = "matching"
)

// Step は学習フローの1段階です。
type Step struct {
	Name  string
	Title string
}

// LearningFlow はフラッシュカード -> 選択問題 -> 書き取り -> マッチング の順で進みます。
var LearningFlow = []Step{
	{Name: StepFlashcard, Title: "Flashcard - Ghi nhớ từ"},
	{Name: string(ModeMultipleChoice), Title: "Trắc nghiệm - Kiểm tra hiểu"},
	{Name: string(ModeWriting), Title: "Viết lại từ - Ghi nhớ chủ động"},
	{Name: StepMatching, Title: "Nối từ - Củng cố nghĩa"},
}

// NextStep は current の次の段階を返します。最後の段階なら ok=false。
func NextStep(current int) (int, bool) {
	if current+1 < len(LearningFlow) {
		return current + 1, true
	}
	return current, false
}
