package commands

var WriteHostInfoExported = writeHostInfo
