package locale

type message struct {
	ko string
	en string
	zh string
}

// 面向用户的提示文案，键与 service 层的校验编号一致。
var catalog = map[string]message{
	"fields_required":       {"모든 필드를 입력해주세요.", "Please fill in all fields.", "请填写所有字段。"},
	"login_fields_required": {"이메일과 비밀번호를 입력해주세요.", "Please enter your email and password.", "请输入邮箱和密码。"},
	"email_invalid":         {"올바른 이메일 형식이 아닙니다.", "The email address is not valid.", "邮箱格式不正确。"},
	"password_invalid":      {"비밀번호는 8자 이상, 영문과 숫자를 포함해야 합니다.", "Passwords need at least 8 characters including letters and digits.", "密码至少 8 位，且需同时包含字母和数字。"},
	"nickname_invalid":      {"닉네임은 2~12자, 한글/영문/숫자만 가능합니다.", "Nicknames must be 2-12 Hangul, letters or digits.", "昵称需为 2~12 位韩文、字母或数字。"},
	"email_taken":           {"이미 사용 중인 이메일입니다.", "This email is already in use.", "该邮箱已被使用。"},
	"nickname_taken":        {"이미 사용 중인 닉네임입니다.", "This nickname is already in use.", "该昵称已被使用。"},
	"invalid_credentials":   {"이메일 또는 비밀번호가 일치하지 않습니다.", "Email or password does not match.", "邮箱或密码不正确。"},
	"login_required":        {"로그인이 필요합니다.", "Login required.", "请先登录。"},
	"logged_out":            {"로그아웃되었습니다.", "Logged out.", "已退出登录。"},
	"invalid_body":          {"요청 형식이 올바르지 않습니다.", "The request body is malformed.", "请求格式不正确。"},
	"content_required":      {"내용을 입력해주세요.", "Please enter the content.", "请输入内容。"},
	"title_too_long":        {"제목은 200자 이내로 입력해주세요.", "Titles are limited to 200 characters.", "标题不能超过 200 个字符。"},
	"invalid_post_id":       {"잘못된 게시글 ID입니다.", "Invalid post id.", "文章 ID 无效。"},
	"post_not_found":        {"게시글을 찾을 수 없습니다.", "Post not found.", "找不到该文章。"},
	"post_deleted":          {"게시글이 삭제되었습니다.", "Post deleted.", "文章已删除。"},
	"forbidden_edit":        {"수정 권한이 없습니다.", "You cannot edit this.", "没有修改权限。"},
	"forbidden_delete":      {"삭제 권한이 없습니다.", "You cannot delete this.", "没有删除权限。"},
	"comment_required":      {"댓글 내용을 입력해주세요.", "Please enter a comment.", "请输入评论内容。"},
	"comment_too_long":      {"댓글은 1000자 이내로 입력해주세요.", "Comments are limited to 1000 characters.", "评论不能超过 1000 个字符。"},
	"invalid_comment_id":    {"잘못된 댓글 ID입니다.", "Invalid comment id.", "评论 ID 无效。"},
	"comment_not_found":     {"댓글을 찾을 수 없습니다.", "Comment not found.", "找不到该评论。"},
	"comment_deleted":       {"댓글이 삭제되었습니다.", "Comment deleted.", "评论已删除。"},
	"file_missing":          {"파일이 없습니다.", "No file was uploaded.", "未找到上传的文件。"},
	"file_type_invalid":     {"허용되지 않는 파일 형식입니다. (jpg, png, gif, webp만 가능)", "Unsupported file type (jpg, png, gif, webp only).", "不支持的文件类型（仅限 jpg、png、gif、webp）。"},
	"file_too_large":        {"파일 크기는 5MB 이하만 가능합니다.", "Files must be 5MB or smaller.", "文件大小不能超过 5MB。"},
	"upload_failed":         {"파일 업로드에 실패했습니다.", "File upload failed.", "文件上传失败。"},
	"feedback_type_invalid": {"피드백 유형을 선택해주세요.", "Please choose a feedback type.", "请选择反馈类型。"},
	"feedback_required":     {"피드백 내용을 입력해주세요.", "Please enter your feedback.", "请输入反馈内容。"},
	"feedback_too_long":     {"피드백은 2000자 이내로 입력해주세요.", "Feedback is limited to 2000 characters.", "反馈不能超过 2000 个字符。"},
	"feedback_submitted":    {"피드백이 제출되었습니다. 감사합니다!", "Feedback submitted. Thank you!", "反馈已提交，谢谢！"},
	"server_error":          {"서버 오류가 발생했습니다.", "Internal server error.", "服务器发生错误。"},
	"unknown_author":        {"알 수 없음", "Unknown", "未知"},
}

// Message returns the text for key in language, falling back to Korean and
// then to the key itself.
func Message(language, key string) string {
	entry, ok := catalog[key]
	if !ok {
		return key
	}

	var text string
	switch NormalizeLanguage(language) {
	case LanguageEnglish:
		text = entry.en
	case LanguageChinese:
		text = entry.zh
	}
	if text == "" {
		text = entry.ko
	}
	return text
}
