package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lecturelens/lecturelens/internal/domain/studyModel"
)

// extensionTable is consulted only when the declared MIME type is absent or
// ambiguous. Unrecognized combinations are an error, never a silent
// plain-text fallback.
var extensionTable = map[string]studyModel.ArtifactKind{
	".pdf":  studyModel.KindPDF,
	".ppt":  studyModel.KindPPTX,
	".pptx": studyModel.KindPPTX,
	".mp3":  studyModel.KindAudio,
	".wav":  studyModel.KindAudio,
	".m4a":  studyModel.KindAudio,
	".mp4":  studyModel.KindVideo,
	".webm": studyModel.KindVideo,
	".jpg":  studyModel.KindImage,
	".jpeg": studyModel.KindImage,
	".png":  studyModel.KindImage,
	".webp": studyModel.KindImage,
	".txt":  studyModel.KindText,
	".docx": studyModel.KindText,
	".rtf":  studyModel.KindText,
	".odt":  studyModel.KindText,
}

var pptxMIMETypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.ms-powerpoint": true,
}

// Classify maps a file name and browser-reported MIME type to a pipeline
// variant. MIME wins when it is specific, the extension table breaks ties.
func Classify(fileName string, mimeType string) (studyModel.ArtifactKind, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case mimeType == "application/pdf":
		return studyModel.KindPDF, nil
	case pptxMIMETypes[mimeType]:
		return studyModel.KindPPTX, nil
	case strings.HasPrefix(mimeType, "image/"):
		return studyModel.KindImage, nil
	case strings.HasPrefix(mimeType, "audio/"):
		return studyModel.KindAudio, nil
	case strings.HasPrefix(mimeType, "video/"):
		return studyModel.KindVideo, nil
	case strings.HasPrefix(mimeType, "text/"):
		return studyModel.KindText, nil
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if kind, ok := extensionTable[ext]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q (mime %q)", studyModel.ErrUnsupportedType, fileName, mimeType)
}

// SupportedExtensions lists every extension the classifier accepts.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionTable))
	for ext := range extensionTable {
		exts = append(exts, ext)
	}
	return exts
}
