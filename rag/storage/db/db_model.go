package db

import "time"

// Document 文档表
type Document struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	DocID       string    `gorm:"column:doc_id;type:varchar(64);not null;index"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Content     string    `gorm:"column:content;type:text;not null"`
	Source      string    `gorm:"column:source;type:varchar(1024)"`
	Page        int       `gorm:"column:page;not null;default:0"`
	TextUnitIDs string    `gorm:"column:text_unit_ids;type:text"`
	KnowledgeId int64     `gorm:"column:knowledge_id;not null;index"`
	GmtCreate   time.Time `gorm:"column:gmt_create;autoCreateTime"`
	GmtModified time.Time `gorm:"column:gmt_modified;autoUpdateTime"`
}

// TextUnit 文本单元表，Embedding 为小端序 float32 编码，Headings 为换行分隔的章节标题
type TextUnit struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UnitID      string    `gorm:"column:unit_id;type:varchar(64);not null;index"`
	Text        string    `gorm:"column:text;type:text;not null"`
	DocumentIDs string    `gorm:"column:document_ids;type:text"`
	NumToken    int       `gorm:"column:num_token;not null;default:0"`
	Headings    string    `gorm:"column:headings;type:text"`
	Embedding   []byte    `gorm:"column:embedding;type:blob"`
	Dim         int       `gorm:"column:dim;not null;default:0"`
	KnowledgeId int64     `gorm:"column:knowledge_id;not null;index"`
	GmtCreate   time.Time `gorm:"column:gmt_create;autoCreateTime"`
	GmtModified time.Time `gorm:"column:gmt_modified;autoUpdateTime"`
}

// Knowledge 知识汇总表
type Knowledge struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	DocumentIDs string    `gorm:"column:document_ids;type:text"`
	TextUnitIDs string    `gorm:"column:textunit_ids;type:text"`
	Distance    string    `gorm:"column:distance;type:varchar(16)"`
	GmtCreate   time.Time `gorm:"column:gmt_create;autoCreateTime"`
	GmtModified time.Time `gorm:"column:gmt_modified;autoUpdateTime"`
}

// TableName 为每个模型指定表名
func (Document) TableName() string {
	return "ragqa_document"
}

func (TextUnit) TableName() string {
	return "ragqa_textunit"
}

func (Knowledge) TableName() string {
	return "ragqa_knowledge"
}
