package constant

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Intent labels
const (
	IntentDatabaseQuery = "DATABASE_QUERY"
	IntentGeneralChat   = "GENERAL_CHAT"
)

// Slot display names used in clarification copy
const (
	SlotNameBranch  = "Chi nhánh"
	SlotNameGrade   = "Khối"
	SlotNameSubject = "Môn học"
)

// Title derivation
const (
	TitleMaxLen   = 50
	TitleEllipsis = "..."
)

// ExtractionPromptTemplate asks for a pipe-delimited triple. Placeholders:
// valid branches, valid grades, valid subjects, utterance.
const ExtractionPromptTemplate = `Trích xuất thông tin "Chi nhánh" (Branch), "Khối" (Grade) và "Môn học" (Subject) từ câu nói của người dùng.
Danh sách Chi nhánh hợp lệ: %s
Danh sách Khối hợp lệ: %s
Danh sách Môn học hợp lệ: %s

Nếu người dùng nhắc đến địa điểm (Hà Nội, Sài Gòn...), hãy map về Chi nhánh tương ứng.
Nếu không tìm thấy, trả về "None".

Câu nói: "%s"

Output format: Branch|Grade|Subject
Ví dụ:
"Em học lớp 10 ở Hà Nội" -> Thăng Long Hà Nội|10|None
"Mình muốn học Toán ở đà nẵng" -> Thăng Long Đà Nẵng|None|Toán
"Không có gì" -> None|None|None`

// IntentPromptTemplate classifies a question into the two intents.
const IntentPromptTemplate = `Bạn là một bộ phân loại ý định cho Chatbot tuyển sinh.
Nhiệm vụ của bạn là xác định xem câu hỏi của người dùng thuộc loại nào trong 2 loại sau:

1. "DATABASE_QUERY": Câu hỏi yêu cầu tra cứu dữ liệu cụ thể, động, thường xuyên thay đổi như:
   - Chi nhánh, địa chỉ cụ thể nào đó.
   - Khoá học có những gì.
   - Lịch nghỉ lễ, lịch học, ca học.
   - Danh sách giáo viên.
   - Thông tin về học kì (semester).
   Ví dụ: "Lịch học toán lớp 10 thế nào?", "Chi nhánh có những thầy cô nào?", "Mai có được nghỉ không?".

2. "GENERAL_CHAT": Các câu hỏi chung chung, chào hỏi, hoặc kiến thức tĩnh có sẵn trong tài liệu tuyển sinh chung (quy chế, giới thiệu chung, học phí chung...).
   Ví dụ: "Xin chào", "Trung tâm thành lập năm nào?", "Học phí quy định chung ra sao?", "Em muốn đăng ký học".

Câu hỏi: %s

Chỉ trả lời duy nhất một từ khoá: DATABASE_QUERY hoặc GENERAL_CHAT.`

// SynthesisPromptTemplate demands a structured JSON object so course
// cards can be rendered next to the answer. Placeholders: data bundle,
// question.
const SynthesisPromptTemplate = `Bạn là trợ lý ảo tuyển sinh.
Dựa vào dữ liệu sau đây để trả lời câu hỏi của học sinh.
Nếu dữ liệu không có thông tin, hãy nói rõ.

Dữ liệu tra cứu được:
%s

Câu hỏi: %s

Trả lời DUY NHẤT bằng một JSON object theo đúng định dạng sau, không thêm chữ nào khác:
{"answer": "câu trả lời ngắn gọn, đầy đủ, thân thiện", "courses": [{"id": "...", "name": "...", "schedule": "...", "location": "...", "price": "...", "status": "...", "end_date": "..."}]}
Nếu không có lớp học phù hợp, để "courses" là mảng rỗng.`

// GeneralChatPromptTemplate answers from retrieved passages.
// Placeholders: context passages, question.
const GeneralChatPromptTemplate = `Bạn là trợ lý ảo tuyển sinh của trung tâm.
Dựa vào thông tin tham khảo dưới đây để trả lời câu hỏi của học sinh một cách ngắn gọn, thân thiện.
Nếu thông tin tham khảo không liên quan, hãy trả lời bằng kiến thức chung và mời học sinh hỏi thêm về tuyển sinh.

Thông tin tham khảo:
%s

Câu hỏi: %s`

// User-facing copy
const (
	ClarifyTemplate      = "Để tư vấn chính xác, thầy/cô cần biết em đang quan tâm đến %s nào? Em vui lòng chọn hoặc cung cấp thêm nhé."
	MsgEngineUnavailable = "Xin lỗi, hệ thống tra cứu tài liệu đang được cập nhật. Em vui lòng quay lại sau hoặc hỏi về lịch học và chi nhánh nhé."
	MsgUnknownRequest    = "Xin lỗi, hệ thống đang gặp sự cố không xác định được yêu cầu."
	ApologyTemplate      = "Xin lỗi, hệ thống đang gặp sự cố: %s"
)

// Guardrail keyword sets. Priority when several match: grade first,
// then branch, then subject.
var (
	GuardrailGradeKeywords   = []string{"khối nào", "khối lớp", "chọn khối", "lớp mấy", "khối mấy"}
	GuardrailBranchKeywords  = []string{"chi nhánh nào", "cơ sở nào", "chọn chi nhánh", "địa chỉ nào", "cơ sở gần"}
	GuardrailSubjectKeywords = []string{"môn nào", "chọn môn", "môn gì"}
)
